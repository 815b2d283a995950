// Package fetch talks to the external catalog source. Transport is the
// cross-boundary protocol (URL in, raw document out); CatalogFetcher turns a
// book query into a metadata record by scraping the catalog's search page.
// Host-disconnect errors get their own classification so teardown noise is
// not logged as failure.
package fetch
