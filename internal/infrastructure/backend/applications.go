package backend

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"hire-portal/internal/domain/application"
	"hire-portal/internal/domain/page"
)

func filterQuery(f application.ListFilter) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("applicationId", f.ApplicationID)
	set("status", f.Status)
	set("jobTitle", f.JobTitle)
	set("candidateName", f.CandidateName)
	return q
}

func (c *Client) ListApplications(ctx context.Context, f application.ListFilter) ([]application.Record, error) {
	var out []application.Record
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/applications", filterQuery(f)), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []application.Record{}
	}
	return out, nil
}

func (c *Client) ListApplicationsPaged(ctx context.Context, f application.ListFilter, pageIndex, size int) (page.Response[application.Record], error) {
	q := filterQuery(f)
	q.Set("page", strconv.Itoa(pageIndex))
	q.Set("size", strconv.Itoa(size))

	var out page.Response[application.Record]
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/applications/paged", q), nil, &out); err != nil {
		return page.Response[application.Record]{}, err
	}
	if out.Content == nil {
		out.Content = []application.Record{}
	}
	return out, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (application.Record, error) {
	var out application.Record
	err := c.doJSON(ctx, http.MethodGet, c.endpoint("/applications/"+url.PathEscape(id), nil), nil, &out)
	return out, err
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, status application.Status) (application.Record, error) {
	q := url.Values{}
	q.Set("status", string(status))

	var out application.Record
	err := c.doJSON(ctx, http.MethodPatch, c.endpoint("/applications/"+url.PathEscape(id)+"/status", q), nil, &out)
	return out, err
}

func (c *Client) MyApplications(ctx context.Context) ([]application.Record, error) {
	var out []application.Record
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("/applications/me", nil), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []application.Record{}
	}
	return out, nil
}

func (c *Client) MyApplication(ctx context.Context, id string) (application.Record, error) {
	var out application.Record
	err := c.doJSON(ctx, http.MethodGet, c.endpoint("/applications/me/"+url.PathEscape(id), nil), nil, &out)
	return out, err
}

func (c *Client) MyApplicationByJob(ctx context.Context, jobID string) (application.Record, error) {
	var out application.Record
	err := c.doJSON(ctx, http.MethodGet, c.endpoint("/applications/me/by-job/"+url.PathEscape(jobID), nil), nil, &out)
	return out, err
}

// Apply submits a new application as multipart form data.
func (c *Client) Apply(ctx context.Context, jobID, githubURL string, cv application.CV) (application.Record, error) {
	fields := map[string]string{"jobId": jobID, "githubUrl": githubURL}
	body, contentType, err := multipartBody(fields, &cv)
	if err != nil {
		return application.Record{}, err
	}

	resp, err := c.send(ctx, http.MethodPost, c.endpoint("/applications", nil), body, contentType)
	if err != nil {
		return application.Record{}, err
	}
	defer resp.Body.Close()

	var out application.Record
	err = decodeBody(resp.Body, &out)
	return out, err
}

// UpdateMyApplication patches the candidate's own application. Either field may
// be omitted.
func (c *Client) UpdateMyApplication(ctx context.Context, id, githubURL string, cv *application.CV) (application.Record, error) {
	fields := map[string]string{}
	if v := strings.TrimSpace(githubURL); v != "" {
		fields["githubUrl"] = v
	}
	body, contentType, err := multipartBody(fields, cv)
	if err != nil {
		return application.Record{}, err
	}

	resp, err := c.send(ctx, http.MethodPatch, c.endpoint("/applications/me/"+url.PathEscape(id), nil), body, contentType)
	if err != nil {
		return application.Record{}, err
	}
	defer resp.Body.Close()

	var out application.Record
	err = decodeBody(resp.Body, &out)
	return out, err
}

func (c *Client) DownloadCV(ctx context.Context, id string) (application.CV, error) {
	return c.download(ctx, c.endpoint("/applications/"+url.PathEscape(id)+"/cv", nil), "cv-"+id+".pdf")
}

func (c *Client) DownloadMyCV(ctx context.Context, id string) (application.CV, error) {
	return c.download(ctx, c.endpoint("/applications/me/"+url.PathEscape(id)+"/cv", nil), "cv-"+id+".pdf")
}

func (c *Client) download(ctx context.Context, endpoint, fallbackName string) (application.CV, error) {
	resp, err := c.send(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return application.CV{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return application.CV{}, err
	}

	name := fallbackName
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if fn := strings.TrimSpace(params["filename"]); fn != "" {
			name = fn
		}
	}
	ct := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if ct == "" {
		ct = "application/pdf"
	}

	return application.CV{FileName: name, ContentType: ct, Data: data}, nil
}

func multipartBody(fields map[string]string, cv *application.CV) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	if cv != nil && (cv.FileName != "" || len(cv.Data) > 0) {
		ct := cv.ContentType
		if ct == "" {
			ct = "application/pdf"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": "cv", "filename": cv.FileName}))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(cv.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
