// Package log provides secure logging functionality with automatic
// sanitization of personal information, built on top of the standard
// slog package.
//
// Scraped records carry personal data: names, phone numbers, e-mail
// and postal addresses of the people who filed reports. Log lines must
// never echo those values, even in verbose mode, because logs get
// shared and stored far more casually than the database.
//
// The SecureHandler automatically masks:
//   - Attribute keys that name personal fields (name, contact, e-mail,
//     address)
//   - Values that look like Indian mobile numbers or e-mail addresses,
//     regardless of key
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("record extracted",
//	    "contact_number", "9820012345", // masked
//	    "station", "Andheri",           // kept
//	)
//
//	slog.SetDefault(logger)
package log
