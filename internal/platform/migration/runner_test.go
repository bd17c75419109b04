// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestPgx5DSN rewrites the postgres schemes and leaves others alone.
*/
func TestPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/yomira?sslmode=disable", pgx5DSN("postgres://u:p@db:5432/yomira?sslmode=disable"))
	assert.Equal(t, "pgx5://db/yomira", pgx5DSN("postgresql://db/yomira"))
	assert.Equal(t, "pgx5://db/yomira", pgx5DSN("pgx5://db/yomira"))
	assert.Equal(t, "host=db dbname=yomira", pgx5DSN("host=db dbname=yomira"))
}
