package hapio

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"lumera/models"
	"lumera/utils"
)

func (c *Client) ListResources(ctx context.Context, p ListParams) (*Page[models.HapioResource], error) {
	var page Page[models.HapioResource]
	if err := c.do(ctx, http.MethodGet, "/resources", p.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateResource(ctx context.Context, in CreateResourceInput) (*models.HapioResource, error) {
	var resource models.HapioResource
	if err := c.do(ctx, http.MethodPost, "/resources", nil, in, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

func (c *Client) ListLocations(ctx context.Context, p ListParams) (*Page[models.HapioLocation], error) {
	var page Page[models.HapioLocation]
	if err := c.do(ctx, http.MethodGet, "/locations", p.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateLocation(ctx context.Context, in CreateLocationInput) (*models.HapioLocation, error) {
	var location models.HapioLocation
	if err := c.do(ctx, http.MethodPost, "/locations", nil, in, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

func (c *Client) ListServices(ctx context.Context, p ListParams) (*Page[models.HapioService], error) {
	var page Page[models.HapioService]
	if err := c.do(ctx, http.MethodGet, "/services", p.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetService fetches a single service by id. Hapio's 404 is translated to
// a NotFoundError so callers need not inspect upstream status codes.
func (c *Client) GetService(ctx context.Context, serviceID string) (*models.HapioService, error) {
	var service models.HapioService
	err := c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(serviceID), nil, nil, &service)
	if err != nil {
		var ue *utils.UpstreamError
		if errors.As(err, &ue) && ue.Status == http.StatusNotFound {
			return nil, &utils.NotFoundError{Resource: "service", ID: serviceID}
		}
		return nil, err
	}
	return &service, nil
}

func (c *Client) CreateService(ctx context.Context, in CreateServiceInput) (*models.HapioService, error) {
	var service models.HapioService
	if err := c.do(ctx, http.MethodPost, "/services", nil, in, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *Client) DeleteService(ctx context.Context, serviceID string) error {
	return c.do(ctx, http.MethodDelete, "/services/"+url.PathEscape(serviceID), nil, nil, nil)
}

func (c *Client) ListBookingGroups(ctx context.Context, p ListParams) (*Page[models.HapioBookingGroup], error) {
	var page Page[models.HapioBookingGroup]
	if err := c.do(ctx, http.MethodGet, "/booking-groups", p.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateBookingGroup(ctx context.Context, in CreateBookingGroupInput) (*models.HapioBookingGroup, error) {
	var group models.HapioBookingGroup
	if err := c.do(ctx, http.MethodPost, "/booking-groups", nil, in, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (c *Client) ListServiceResources(ctx context.Context, serviceID string, p ListParams) (*Page[models.HapioResource], error) {
	var page Page[models.HapioResource]
	path := "/services/" + url.PathEscape(serviceID) + "/resources"
	if err := c.do(ctx, http.MethodGet, path, p.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AssociateResource links a resource to a service so the resource's
// schedule feeds the service's bookable slots.
func (c *Client) AssociateResource(ctx context.Context, serviceID, resourceID string) error {
	path := "/services/" + url.PathEscape(serviceID) + "/resources/" + url.PathEscape(resourceID)
	return c.do(ctx, http.MethodPut, path, nil, nil, nil)
}
