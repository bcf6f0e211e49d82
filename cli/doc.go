// Package cli implements the portalauth command line: log in, call the portal
// API with automatic token refresh, force a refresh and log out.
package cli
