// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the answer returned by POST /chat. Response is required;
// Sources is optional and ordered as the backend ranked the citations.
type ChatResponse struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources,omitempty"`
}

// UploadAck is the acknowledgement returned by POST /upload.
type UploadAck struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// DeleteAck is the acknowledgement returned by DELETE /documents/{filename}.
type DeleteAck struct {
	Filename string `json:"filename,omitempty"`
	Status   string `json:"status,omitempty"`
}

// apiError is the error body the backend sends on non-2xx responses.
type apiError struct {
	Detail string `json:"detail"`
}
