// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "fmt"

// Envelope is the common prefix of every backend response.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Success reports whether the envelope carries the success code for
// domain endpoints (200).
func (e Envelope) Success() bool { return e.Code == 200 }

// MasterSuccess reports success for the master-save endpoints, which
// answer 0 on success; 200 is also accepted because newer backend
// builds converged on it.
func (e Envelope) MasterSuccess() bool { return e.Code == 0 || e.Code == 200 }

// DomainError is a well-formed backend refusal: the HTTP exchange
// succeeded but the envelope code is not a success for the endpoint.
type DomainError struct {
	Code    int
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned code %d", e.Code)
}

// Err converts a domain-endpoint envelope into an error: nil on
// success, a *DomainError carrying the backend message otherwise.
func (e Envelope) Err() error {
	if e.Success() {
		return nil
	}
	return &DomainError{Code: e.Code, Message: e.Message}
}

// MasterErr is Err for the master-save endpoints.
func (e Envelope) MasterErr() error {
	if e.MasterSuccess() {
		return nil
	}
	return &DomainError{Code: e.Code, Message: e.Message}
}
