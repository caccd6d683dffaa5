// Package incident defines the incident record written for every classified alarm.
package incident
