package vedicweb

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// analytics.js (the page-view beacon script).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
