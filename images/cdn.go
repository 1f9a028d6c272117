package images

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// CDN holds the coordinates of the content store's image CDN. Asset
// references are resolved to transformation URLs of the form
//
//	https://<base>/images/<project>/<dataset>/<file>?w=...&auto=format
type CDN struct {
	BaseURL   string // default "https://cdn.sanity.io"
	ProjectID string
	Dataset   string
}

const defaultCDNBase = "https://cdn.sanity.io"

// URLFor builds a transformation URL for an uploaded-asset reference.
// A reference looks like "image-<id>-<width>x<height>-<format>"; the file
// part of the URL is "<id>-<width>x<height>.<format>". Width and automatic
// format negotiation are always requested; height and fit only when set.
// This never fails: malformed references still produce a URL string.
func (c CDN) URLFor(ref string, opts Options) string {
	base := c.BaseURL
	if base == "" {
		base = defaultCDNBase
	}

	u := fmt.Sprintf("%s/images/%s/%s/%s", base, c.ProjectID, c.Dataset, assetFile(ref))

	q := url.Values{}
	q.Set("w", strconv.Itoa(opts.Width))
	if opts.Height > 0 {
		q.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Fit != "" {
		q.Set("fit", string(opts.Fit))
	}
	q.Set("auto", "format")
	return u + "?" + q.Encode()
}

// assetFile converts an asset reference to its CDN file name. The trailing
// segment of the reference is the format; everything between the leading
// "image-" marker and the format is the file stem.
func assetFile(ref string) string {
	name := strings.TrimPrefix(ref, "image-")
	if i := strings.LastIndex(name, "-"); i > 0 {
		return name[:i] + "." + name[i+1:]
	}
	return name
}
