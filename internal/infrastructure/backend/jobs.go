package backend

import (
	"context"
	"net/http"
	"net/url"

	"hire-portal/internal/domain/job"
)

func (c *Client) ListJobs(ctx context.Context) ([]job.JobOffer, error) {
	var out []job.JobOffer
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/jobs", nil), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []job.JobOffer{}
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (job.JobOffer, error) {
	var out job.JobOffer
	err := c.doJSON(ctx, http.MethodGet, c.endpoint("/jobs/"+url.PathEscape(id), nil), nil, &out)
	return out, err
}

func (c *Client) CreateJob(ctx context.Context, offer job.JobOffer) (job.JobOffer, error) {
	var out job.JobOffer
	err := c.doJSON(ctx, http.MethodPost, c.endpoint("/jobs", nil), offer, &out)
	return out, err
}

func (c *Client) UpdateJob(ctx context.Context, id string, offer job.JobOffer) (job.JobOffer, error) {
	var out job.JobOffer
	err := c.doJSON(ctx, http.MethodPut, c.endpoint("/jobs/"+url.PathEscape(id), nil), offer, &out)
	return out, err
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint("/jobs/"+url.PathEscape(id), nil), nil, nil)
}
