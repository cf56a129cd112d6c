// Package ingest converts heterogeneous documents (PDF, DOCX, Markdown,
// plain text, HTML from a URL) into an ordered sequence of typed,
// semantically tagged content blocks suitable for populating a structured
// playbook, and aggregates them into a suggested playbook outline.
//
// This package contains domain types, interfaces, and the pure
// classification core following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, pdfcpu/, goquery/, gemini/).
package ingest
