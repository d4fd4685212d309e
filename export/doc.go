// Package export loads finished wikigraph artifacts into databases.
//
// Every store gets the same view of the data: one Node per page, carrying
// its title, its outgoing links and the titles that redirect to it. SQLite
// additionally keeps pages, redirects and links as separate tables.
package export
