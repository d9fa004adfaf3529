package gallery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://www.visitbusan.net"
	listPath       = "/index.do"
	pageSize       = 15
	crawlTimeout   = 10 * time.Second

	photoSource    = "부산광역시 관광사진 (visitbusan.net)"
	photoCopyright = "부산광역시청 / 공공누리"
)

var (
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	digitsPattern  = regexp.MustCompile(`\d+`)
)

// Photo is one entry of the Busan tourism photo gallery.
type Photo struct {
	Title         string   `json:"title"`
	ImageURL      string   `json:"image_url"`
	ThumbnailURL  string   `json:"thumbnail_url,omitempty"`
	Year          string   `json:"year,omitempty"`
	Agency        string   `json:"agency,omitempty"`
	Institution   string   `json:"institution,omitempty"`
	Hashtags      []string `json:"hashtags,omitempty"`
	DownloadCount int      `json:"download_count,omitempty"`
	Source        string   `json:"source"`
	Copyright     string   `json:"copyright"`
}

type Crawler struct {
	client  *http.Client
	baseURL string
	delay   time.Duration
	logger  *zap.Logger
}

type Option func(*Crawler)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Crawler) { c.client = client }
}

func WithBaseURL(baseURL string) Option {
	return func(c *Crawler) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithDelay sets the pause between page requests.
func WithDelay(d time.Duration) Option {
	return func(c *Crawler) { c.delay = d }
}

func NewCrawler(logger *zap.Logger, opts ...Option) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Crawler{
		client:  &http.Client{Timeout: crawlTimeout},
		baseURL: DefaultBaseURL,
		delay:   time.Second,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Crawler) pageURL(page int) string {
	q := url.Values{}
	q.Set("menuCd", "DOM_000000204009000000")
	q.Set("rgt_type_code", "1")
	q.Set("list_type", "TYPE_SMALL_CARD")
	q.Set("order_type", "VIEW")
	q.Set("listCntPerPage2", strconv.Itoa(pageSize))
	q.Set("page_no", strconv.Itoa(page))
	return c.baseURL + listPath + "?" + q.Encode()
}

// FetchPage scrapes one listing page. Cards without an image or a title are
// dropped.
func (c *Crawler) FetchPage(ctx context.Context, page int) ([]Photo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constants.ImageLoad.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	cards := doc.Find("div.cardlist")
	if cards.Length() == 0 {
		cards = doc.Find("li.cardlist")
	}
	if cards.Length() == 0 {
		cards = doc.Find("div.li")
	}
	if cards.Length() == 0 {
		containers := doc.Find("img").Parent()
		cards = containers.Slice(0, min(pageSize, containers.Length()))
	}

	photos := make([]Photo, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		if p, ok := c.extract(card); ok {
			photos = append(photos, p)
		}
	})

	c.logger.Debug("Gallery page scraped",
		zap.Int("page", page),
		zap.Int("cards", cards.Length()),
		zap.Int("photos", len(photos)),
	)
	return photos, nil
}

func (c *Crawler) extract(card *goquery.Selection) (Photo, bool) {
	var p Photo

	img := card.Find("img").First()
	src, ok := img.Attr("src")
	if !ok || src == "" {
		src, _ = img.Attr("data-src")
	}
	if src != "" {
		if strings.Contains(src, "_thumbL") {
			p.ImageURL = c.resolve(strings.ReplaceAll(src, "_thumbL", ""))
			p.ThumbnailURL = c.resolve(src)
		} else {
			p.ImageURL = c.resolve(src)
		}
	}

	p.Title = strings.TrimSpace(card.Find("div.subject").First().Text())

	card.Find("dl").Each(func(_ int, dl *goquery.Selection) {
		dds := dl.Find("dd")
		dl.Find("dt").Each(func(i int, dt *goquery.Selection) {
			if i >= dds.Length() {
				return
			}
			label := strings.TrimSpace(dt.Text())
			value := strings.TrimSpace(dds.Eq(i).Text())
			switch {
			case strings.Contains(label, "촬영연도"):
				p.Year = value
			case strings.Contains(label, "촬영기관"):
				p.Agency = value
			case strings.Contains(label, "보유기관"):
				p.Institution = value
			}
		})
	})

	if tags := card.Find("div.hash-tag").First(); tags.Length() > 0 {
		p.Hashtags = hashtagPattern.FindAllString(tags.Text(), -1)
	}

	if link := card.Find("div.download-info a.download-link").First(); link.Length() > 0 {
		if m := digitsPattern.FindString(link.Text()); m != "" {
			p.DownloadCount, _ = strconv.Atoi(m)
		}
	}

	if p.ImageURL == "" || p.Title == "" {
		return Photo{}, false
	}
	p.Source = photoSource
	p.Copyright = photoCopyright
	return p, true
}

func (c *Crawler) resolve(ref string) string {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

// Crawl scrapes pages start..end in order and stops at the first page that
// yields nothing. A failing page ends the crawl with what was collected.
func (c *Crawler) Crawl(ctx context.Context, start, end int) ([]Photo, error) {
	var all []Photo
	for page := start; page <= end; page++ {
		photos, err := c.FetchPage(ctx, page)
		if err != nil {
			c.logger.Warn("Gallery page failed", zap.Int("page", page), zap.Error(err))
			return all, err
		}
		if len(photos) == 0 {
			c.logger.Info("Gallery page empty, stopping", zap.Int("page", page))
			break
		}
		all = append(all, photos...)

		if page < end && c.delay > 0 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return all, ctx.Err()
			}
		}
	}

	c.logger.Info("Gallery crawl finished", zap.Int("photos", len(all)))
	return all, nil
}
