// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Email is a rendered message ready to be handed to a delivery transport.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`

	// HTMLBody is the rendered HTML document.
	HTMLBody string `json:"html_body"`
}
