// Package directory loads the user-maintained file that maps hardware ids to
// display names. The file is read again on every Load so edits apply on the
// next poll cycle without a restart.
package directory
