/*
Copyright 2025 The JQL Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package batchserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthzReturnsOK(t *testing.T) {
	handler := New(zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestWalkEndpointReturnsSelectedValue(t *testing.T) {
	handler := New(zap.NewNop())
	body, err := json.Marshal(walkRequest{
		Selector: `"a"`,
		Input:    json.RawMessage(`{"a":1}`),
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/walk", bytes.NewReader(body))

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp walkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Empty(t, resp.Error)
	require.JSONEq(t, "1", string(resp.Result))
}

func TestWalkEndpointSurfacesWalkErrorAsValue(t *testing.T) {
	handler := New(zap.NewNop())
	body, _ := json.Marshal(walkRequest{
		Selector: `"missing"`,
		Input:    json.RawMessage(`{"a":1}`),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/walk", bytes.NewReader(body))

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp walkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Error)
}

func TestWalkEndpointRejectsNonPost(t *testing.T) {
	handler := New(zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/walk", nil)

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
