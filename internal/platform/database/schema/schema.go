/*
Package schema names the tables and columns of the database, one struct per
table, so queries are assembled from identifiers the compiler can check.

Files follow the PostgreSQL schemas: users, core, social, site and system.
*/
package schema

import "strings"

// List joins columns into a SELECT or INSERT column list.
func List(columns ...string) string {
	return strings.Join(columns, ", ")
}
