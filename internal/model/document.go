// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Document, the immutable input of the parser.
package model

import "path/filepath"

// Document is the text of one report and the path it originated from.
type Document struct {
	Path    string
	Content string
}

// NewDocument creates a Document from a path and its decoded content.
func NewDocument(path, content string) Document {
	return Document{Path: path, Content: content}
}

// Filename returns the base name of the document path.
func (d Document) Filename() string {
	if d.Path == "" {
		return ""
	}
	return filepath.Base(d.Path)
}
