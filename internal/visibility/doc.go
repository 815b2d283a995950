// Package visibility maintains the set of on-screen cards from host-fed
// intersection reports and triggers scheduler reprioritization when a card
// scrolls into view.
package visibility
