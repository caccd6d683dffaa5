// Package alarm contains the inbound domain types: the Envelope delivered by the
// notification transport and the alarm state-change Event decoded from it.
package alarm
