// Package notifier announces arrivals and fatal configuration problems with a
// spoken message and a desktop notification.
package notifier
