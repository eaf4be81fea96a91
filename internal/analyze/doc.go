// Package analyze computes offline statistics over scraped lost/found
// records: police station counts, time-of-day and seasonal
// distributions, locality grouping, pin code ratios, and e-mail
// provider counts.
package analyze
