// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/netapp/xtremio-driver/utils/errors"
)

// Collection is a typed accessor for one XMS collection.
type Collection[T any] struct {
	client *Client
	name   string
}

func newCollection[T any](client *Client, name string) Collection[T] {
	return Collection[T]{client: client, name: name}
}

func (c Collection[T]) Name() string {
	return c.name
}

// List returns the summary references (href and name) of every record.
func (c Collection[T]) List(ctx context.Context) ([]Reference, error) {
	response, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	return decodeListing[Reference](response.Body, c.name)
}

// ListFull returns hydrated records, narrowed by any server-side filters in the query.
func (c Collection[T]) ListFull(ctx context.Context, query Query) ([]T, error) {
	payload := map[string]any{"full": 1}
	if len(query.Filters) > 0 {
		payload["filter"] = query.Filters
	}
	if len(query.Props) > 0 {
		payload["prop"] = query.Props
	}

	response, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodGet, Payload: payload})
	if err != nil {
		return nil, err
	}
	return decodeListing[T](response.Body, c.name)
}

// Count returns the number of records in the collection.
func (c Collection[T]) Count(ctx context.Context) (int, error) {
	refs, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(refs), nil
}

func (c Collection[T]) GetByName(ctx context.Context, name string) (*T, error) {
	if name == "" {
		return nil, errors.InvalidInputError("a name is required to read from %s", c.name)
	}
	return c.get(ctx, Request{Collection: c.name, Method: http.MethodGet, Name: name})
}

func (c Collection[T]) GetByIndex(ctx context.Context, index int) (*T, error) {
	if index <= 0 {
		return nil, errors.InvalidInputError("invalid %s index %d", c.name, index)
	}
	return c.get(ctx, Request{Collection: c.name, Method: http.MethodGet, Index: index})
}

func (c Collection[T]) get(ctx context.Context, request Request) (*T, error) {
	response, err := c.client.InvokeAPI(ctx, request)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Content *T `json:"content"`
	}
	if err = json.Unmarshal(response.Body, &envelope); err != nil {
		return nil, errors.WrapWithBackendAPIError(err, "could not decode %s record", c.name)
	}
	if envelope.Content == nil {
		return nil, errors.NotFoundError("%s record not found", c.name)
	}
	return envelope.Content, nil
}

// Create posts a new record and returns the reference the array assigned to it.
func (c Collection[T]) Create(ctx context.Context, fields map[string]any) (Reference, error) {
	response, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodPost, Payload: fields})
	if err != nil {
		return Reference{}, err
	}

	var envelope struct {
		Links []Reference `json:"links"`
	}
	if err = json.Unmarshal(response.Body, &envelope); err != nil {
		return Reference{}, errors.WrapWithBackendAPIError(err, "could not decode reply to %s create", c.name)
	}
	if len(envelope.Links) == 0 {
		return Reference{}, errors.BackendAPIError("XMS returned no reference for new %s record", c.name)
	}
	return envelope.Links[0], nil
}

func (c Collection[T]) UpdateByName(ctx context.Context, name string, fields map[string]any) error {
	if name == "" {
		return errors.InvalidInputError("a name is required to update %s", c.name)
	}
	_, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodPut, Name: name, Payload: fields})
	return err
}

func (c Collection[T]) UpdateByIndex(ctx context.Context, index int, fields map[string]any) error {
	if index <= 0 {
		return errors.InvalidInputError("invalid %s index %d", c.name, index)
	}
	_, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodPut, Index: index, Payload: fields})
	return err
}

func (c Collection[T]) DeleteByName(ctx context.Context, name string) error {
	if name == "" {
		return errors.InvalidInputError("a name is required to delete from %s", c.name)
	}
	_, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodDelete, Name: name})
	return err
}

func (c Collection[T]) DeleteByIndex(ctx context.Context, index int) error {
	if index <= 0 {
		return errors.InvalidInputError("invalid %s index %d", c.name, index)
	}
	_, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodDelete, Index: index})
	return err
}

// DeleteWhere deletes the record matching the given fields. Join records have no name of their own.
func (c Collection[T]) DeleteWhere(ctx context.Context, fields map[string]any) error {
	if len(fields) == 0 {
		return errors.InvalidInputError("refusing unqualified delete on %s", c.name)
	}
	_, err := c.client.InvokeAPI(ctx, Request{Collection: c.name, Method: http.MethodDelete, Payload: fields})
	return err
}

func decodeListing[T any](body []byte, collection string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.WrapWithBackendAPIError(err, "could not decode %s listing", collection)
	}

	raw, ok := envelope[collection]
	if !ok || string(raw) == "null" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.WrapWithBackendAPIError(err, "could not decode %s listing", collection)
	}
	return items, nil
}

// Typed accessors

func (c *Client) Volumes() Collection[Volume] {
	return newCollection[Volume](c, CollectionVolumes)
}

// Snapshots addresses the snapshot alias of the volumes collection.
func (c *Client) Snapshots() Collection[Volume] {
	return newCollection[Volume](c, CollectionSnapshots)
}

func (c *Client) Initiators() Collection[Initiator] {
	return newCollection[Initiator](c, CollectionInitiators)
}

func (c *Client) InitiatorGroups() Collection[InitiatorGroup] {
	return newCollection[InitiatorGroup](c, CollectionInitiatorGroups)
}

func (c *Client) LunMaps() Collection[LunMap] {
	return newCollection[LunMap](c, CollectionLunMaps)
}

func (c *Client) ConsistencyGroups() Collection[ConsistencyGroup] {
	return newCollection[ConsistencyGroup](c, CollectionConsistencyGroups)
}

func (c *Client) ConsistencyGroupVolumes() Collection[ConsistencyGroupVolume] {
	return newCollection[ConsistencyGroupVolume](c, CollectionConsistencyGroupVolumes)
}

func (c *Client) SnapshotSets() Collection[SnapshotSet] {
	return newCollection[SnapshotSet](c, CollectionSnapshotSets)
}

func (c *Client) Clusters() Collection[Cluster] {
	return newCollection[Cluster](c, CollectionClusters)
}

func (c *Client) ISCSIPortals() Collection[ISCSIPortal] {
	return newCollection[ISCSIPortal](c, CollectionISCSIPortals)
}

func (c *Client) Targets() Collection[Target] {
	return newCollection[Target](c, CollectionTargets)
}

func (c *Client) TargetGroups() Collection[TargetGroup] {
	return newCollection[TargetGroup](c, CollectionTargetGroups)
}

// Records returns an untyped accessor, used by tooling that prints arbitrary collections.
func (c *Client) Records(collection string) Collection[map[string]any] {
	return newCollection[map[string]any](c, collection)
}
