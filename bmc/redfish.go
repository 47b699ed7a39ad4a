// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package bmc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stmcginnis/gofish"

	ctrl "sigs.k8s.io/controller-runtime"
)

var _ BMC = (*RedfishBMC)(nil)

// Options contain the options for the BMC redfish client.
type Options struct {
	Endpoint  string
	Username  string
	Password  string
	BasicAuth bool
	Insecure  bool
}

// RedfishBMC is an implementation of the BMC interface for Redfish.
type RedfishBMC struct {
	client *gofish.APIClient
}

// NewRedfishBMCClient creates a new RedfishBMC with the given connection details.
// The client sends every request on ctx, which must outlive the client.
func NewRedfishBMCClient(ctx context.Context, options Options) (*RedfishBMC, error) {
	if options.Endpoint == "" {
		return nil, fmt.Errorf("BMC endpoint must be set")
	}
	clientConfig := gofish.ClientConfig{
		Endpoint:  options.Endpoint,
		Username:  options.Username,
		Password:  options.Password,
		Insecure:  options.Insecure,
		BasicAuth: options.BasicAuth,
	}
	client, err := gofish.ConnectContext(ctx, clientConfig)
	if err != nil {
		observeRequest(http.MethodGet, err)
		return nil, fmt.Errorf("failed to connect to %s: %w", options.Endpoint, err)
	}
	return NewRedfishBMCClientFromAPIClient(client), nil
}

// NewRedfishBMCClientFromAPIClient wraps an already connected gofish client.
func NewRedfishBMCClientFromAPIClient(client *gofish.APIClient) *RedfishBMC {
	return &RedfishBMC{client: client}
}

// Logout closes the BMC client connection by logging out
func (r *RedfishBMC) Logout() {
	if r.client != nil {
		r.client.Logout()
	}
}

func (r *RedfishBMC) GetEntityFromUri(ctx context.Context, uri string, entity any) error {
	log := ctrl.LoggerFrom(ctx)
	if len(uri) == 0 {
		return fmt.Errorf("can not process empty URI")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.V(1).Info("Fetching resource", "URI", uri)
	resp, err := r.client.Get(uri)
	observeRequest(http.MethodGet, err)
	if err != nil {
		return ParseRedfishError(http.MethodGet, uri, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error(err, "failed to close response body")
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response of %s: %w", uri, err)
	}
	if resp.StatusCode >= 300 {
		return ParseRedfishError(http.MethodGet, uri, fmt.Errorf("%d: %s", resp.StatusCode, body))
	}
	if err := json.Unmarshal(body, entity); err != nil {
		return fmt.Errorf("failed to decode %s: %w", uri, err)
	}
	return nil
}

func (r *RedfishBMC) GetCollectionMembers(ctx context.Context, uri string) ([]string, error) {
	collection := &Collection{}
	if err := r.GetEntityFromUri(ctx, uri, collection); err != nil {
		return nil, err
	}
	members := make([]string, 0, len(collection.Members))
	for _, m := range collection.Members {
		if m.ODataID != "" {
			members = append(members, m.ODataID)
		}
	}
	return members, nil
}

func (r *RedfishBMC) PatchEntity(ctx context.Context, uri string, payload any) error {
	log := ctrl.LoggerFrom(ctx)
	if len(uri) == 0 {
		return fmt.Errorf("can not process empty URI")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.V(1).Info("Patching resource", "URI", uri, "Payload", payload)
	resp, err := r.client.Patch(uri, payload)
	observeRequest(http.MethodPatch, err)
	if err != nil {
		return ParseRedfishError(http.MethodPatch, uri, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error(err, "failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return ParseRedfishError(http.MethodPatch, uri, fmt.Errorf("%d: %s", resp.StatusCode, body))
	}
	return nil
}
