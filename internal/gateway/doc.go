// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway provides the HTTP client for the document-grounded
// question-answering backend.
//
// The backend contract is small and fixed:
//
//	POST   /chat                          {"message": q} -> {"response": a, "sources": [...]}
//	POST   /upload                        multipart field "file"
//	GET    /documents                     -> ["a.pdf", "b.txt"]
//	DELETE /documents/{filename}
//	GET    /documents/{filename}/content  -> raw bytes
//
// Any non-2xx status is a failure. If the body parses as JSON with a
// "detail" field, that string becomes the error message; otherwise the
// HTTP status text is used. ListDocuments is the one exception to the
// error contract: the document list is advisory, so a failed fetch
// degrades to an empty list instead of an error.
package gateway
