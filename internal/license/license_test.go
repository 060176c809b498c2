package license_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyloc/polyloc/internal/license"
)

func TestSniffMIT(t *testing.T) {
	hdr := []byte("Permission is hereby granted, free of charge, to any person...\n")
	spdx, ok := license.Sniff(hdr)
	require.True(t, ok)
	assert.Equal(t, "MIT", spdx)
}

func TestSniffApache2(t *testing.T) {
	hdr := []byte("Licensed under the Apache License, Version 2.0 (the \"License\");\n")
	spdx, ok := license.Sniff(hdr)
	require.True(t, ok)
	assert.Equal(t, "Apache-2.0", spdx)
}

func TestSniffBSD3ClauseDistinguishedFromBSD2(t *testing.T) {
	hdr := []byte(`Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:
Neither the name of the copyright holder nor the names of its contributors
may be used to endorse or promote products derived from this software.
`)
	spdx, ok := license.Sniff(hdr)
	require.True(t, ok)
	assert.Equal(t, "BSD-3-Clause", spdx)
}

func TestSniffBSD2Clause(t *testing.T) {
	hdr := []byte(`Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met.
`)
	spdx, ok := license.Sniff(hdr)
	require.True(t, ok)
	assert.Equal(t, "BSD-2-Clause", spdx)
}

func TestSniffGPL3VsGPL2(t *testing.T) {
	gpl3, ok := license.Sniff([]byte("GNU GENERAL PUBLIC LICENSE Version 3, 29 June 2007\n"))
	require.True(t, ok)
	assert.Equal(t, "GPL-3.0", gpl3)

	gpl2, ok := license.Sniff([]byte("GNU GENERAL PUBLIC LICENSE Version 2, June 1991\n"))
	require.True(t, ok)
	assert.Equal(t, "GPL-2.0", gpl2)
}

func TestSniffNoMatch(t *testing.T) {
	_, ok := license.Sniff([]byte("this file has no recognizable license header\n"))
	assert.False(t, ok)
}

func TestLeadingCommentTextOnlyWithinWindow(t *testing.T) {
	buf := []byte("0123456789 MIT License text here 9876543210 second comment far away")
	spans := [][2]int{
		{11, 33},
		{50, len(buf)},
	}
	out := license.LeadingCommentText(buf, spans, 40)
	assert.Contains(t, string(out), "MIT License text here")
	assert.NotContains(t, string(out), "second comment far away")
}

func TestLeadingCommentTextClampsToBufferLength(t *testing.T) {
	buf := []byte("short")
	spans := [][2]int{{0, 100}}
	out := license.LeadingCommentText(buf, spans, 100)
	assert.Equal(t, "short\n", string(out))
}
