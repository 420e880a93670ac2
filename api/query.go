package api

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/validator-gateway/protocol"
	"github.com/kbukum/validator-gateway/server"
	"github.com/kbukum/validator-gateway/validation"
)

// splitIDs splits a comma separated id query value, dropping empty entries.
func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// flag reports whether a boolean query parameter is present and not "false".
func flag(c *gin.Context, name string) bool {
	raw, ok := c.GetQuery(name)
	return ok && raw != "false" && raw != "0"
}

// listQuery parses the head, id, start, limit, sort and reverse parameters
// shared by the listings. State listings page by address and take an address
// prefix instead of ids.
func listQuery(c *gin.Context, state bool) (*protocol.ListRequest, error) {
	head := c.Query("head")
	start := c.Query("start")
	limit := c.Query("limit")

	v := validation.New().ResourceID("head", head)
	req := &protocol.ListRequest{HeadID: head}
	if state {
		req.Address = c.Query("address")
		v.AddressPrefix("address", req.Address)
		if start != "" {
			v.AddressPrefix("start", start)
		}
	} else {
		req.IDs = splitIDs(c.Query("id"))
		v.ResourceIDs("id", req.IDs).ResourceID("start", start)
	}
	v.Count("limit", limit)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if start != "" || limit != "" {
		req.Paging = &protocol.PagingControls{Start: start}
		req.Paging.Limit, _ = validation.ParseCount(limit)
	}
	req.Sorting = sortControls(c.Query("sort"), flag(c, "reverse"))
	return req, nil
}

// sortControls parses "key.path,-other" into sort controls. A leading "-"
// reverses one key; reverse flips all of them, or orders by the default key
// in reverse when no keys are given.
func sortControls(raw string, reverse bool) []*protocol.SortControls {
	var out []*protocol.SortControls
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		desc := strings.HasPrefix(key, "-")
		out = append(out, &protocol.SortControls{
			Keys:    strings.Split(strings.TrimPrefix(key, "-"), "."),
			Reverse: desc != reverse,
		})
	}
	if len(out) == 0 && reverse {
		out = append(out, &protocol.SortControls{Keys: []string{"default"}, Reverse: true})
	}
	return out
}

// waitSeconds parses the wait parameter of batch status requests. Absent,
// "false" and "0" do not wait. A bare or non-numeric wait, or one beyond the
// limit, waits one second less than ceiling so the validator answers before
// the gateway gives up on it.
func waitSeconds(c *gin.Context, ceiling time.Duration) (bool, uint32) {
	raw, ok := c.GetQuery("wait")
	if !ok || raw == "false" || raw == "0" {
		return false, 0
	}
	secs := int64(ceiling/time.Second) - 1
	if secs < 1 {
		return false, 0
	}
	limit := uint32(min(secs, math.MaxUint32))
	if n, err := strconv.ParseUint(raw, 10, 32); err == nil && n > 0 && uint32(n) < limit {
		return true, uint32(n)
	}
	return true, limit
}

// link builds an absolute URL on the requested host. Commas stay readable.
func link(c *gin.Context, path string, query url.Values) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	u := scheme + "://" + c.Request.Host + path
	if len(query) > 0 {
		u += "?" + strings.ReplaceAll(query.Encode(), "%2C", ",")
	}
	return u
}

// selfLink links to the current request.
func selfLink(c *gin.Context) string {
	return link(c, c.Request.URL.Path, c.Request.URL.Query())
}

// headLink links to the current request pinned to head.
func headLink(c *gin.Context, head string) string {
	q := c.Request.URL.Query()
	if head != "" {
		q.Set("head", head)
	}
	return link(c, c.Request.URL.Path, q)
}

// idsLink links to path?id=a,b.
func idsLink(c *gin.Context, path string, ids []string) string {
	return link(c, path, url.Values{"id": {strings.Join(ids, ",")}})
}

// paging renders the page returned by a listing. Next links to the following
// page pinned to the same head.
func paging(c *gin.Context, req *protocol.PagingControls, resp *protocol.PagingResponse, head string) *server.Paging {
	p := &server.Paging{}
	if req != nil {
		p.Start, p.Limit = req.Start, req.Limit
	}
	if resp == nil {
		return p
	}
	if resp.Start != "" {
		p.Start = resp.Start
	}
	if resp.Limit != 0 {
		p.Limit = resp.Limit
	}
	if resp.Next != "" {
		p.NextPosition = resp.Next
		q := c.Request.URL.Query()
		if head != "" {
			q.Set("head", head)
		}
		q.Set("start", resp.Next)
		if p.Limit != 0 {
			q.Set("limit", strconv.Itoa(int(p.Limit)))
		}
		p.Next = link(c, c.Request.URL.Path, q)
	}
	return p
}
