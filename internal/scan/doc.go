// Package scan discovers candidate book cards on the host page. The Source
// interface abstracts the host; HTMLScanner implements it for HTML snapshots
// via CSS selectors.
package scan
