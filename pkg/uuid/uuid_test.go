// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-press/pkg/uuid"
)

/*
TestNew checks that ids are valid, version 7 and sortable by creation.
*/
func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.IsValid(first))
	assert.Equal(t, byte('7'), first[14])
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:13], second[:13])
}

/*
TestIsValid separates ids from slugs.
*/
func TestIsValid(t *testing.T) {
	assert.True(t, uuid.IsValid("0190f2a4-6c1e-7b3a-9a55-3f0d2f6b9e10"))
	assert.False(t, uuid.IsValid("solo-leveling"))
	assert.False(t, uuid.IsValid(""))
}
