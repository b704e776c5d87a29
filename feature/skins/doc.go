// Package skins persists skin entities and handles their reconciliation and
// unlock statistics jobs.
package skins
