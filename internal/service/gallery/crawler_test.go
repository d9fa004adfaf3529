package gallery

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const cardPage = `<html><body>
<div class="cardlist">
  <img src="/uploadImgs/files/photo/20230101_thumbL.jpg">
  <div class="subject">해운대 해수욕장 야경</div>
  <dl><dt>촬영연도</dt><dd>2023</dd><dt>촬영기관</dt><dd>부산관광공사</dd></dl>
  <dl><dt>보유기관</dt><dd>부산광역시</dd></dl>
  <div class="hash-tag">#해운대 #야경</div>
  <div class="download-info"><a class="download-link">다운로드 42회</a></div>
</div>
<div class="cardlist">
  <img data-src="https://cdn.example.com/gamcheon.jpg">
  <div class="subject">감천문화마을 전경</div>
</div>
<div class="cardlist">
  <div class="subject">사진 없음</div>
</div>
</body></html>`

const listPage = `<html><body><ul>
<li class="cardlist"><img src="/a.jpg"><div class="subject">자갈치시장</div></li>
</ul></body></html>`

func newMockCrawler(t *testing.T) (*Crawler, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	c := NewCrawler(zap.NewNop(),
		WithHTTPClient(&http.Client{Transport: transport}),
		WithBaseURL("https://gallery.test"),
		WithDelay(0),
	)
	return c, transport
}

func TestCrawler_FetchPage(t *testing.T) {
	c, transport := newMockCrawler(t)
	transport.RegisterResponder(http.MethodGet, "https://gallery.test/index.do",
		httpmock.NewStringResponder(http.StatusOK, cardPage))

	photos, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	first := photos[0]
	assert.Equal(t, "해운대 해수욕장 야경", first.Title)
	assert.Equal(t, "https://gallery.test/uploadImgs/files/photo/20230101.jpg", first.ImageURL)
	assert.Equal(t, "https://gallery.test/uploadImgs/files/photo/20230101_thumbL.jpg", first.ThumbnailURL)
	assert.Equal(t, "2023", first.Year)
	assert.Equal(t, "부산관광공사", first.Agency)
	assert.Equal(t, "부산광역시", first.Institution)
	assert.Equal(t, []string{"#해운대", "#야경"}, first.Hashtags)
	assert.Equal(t, 42, first.DownloadCount)
	assert.Equal(t, photoSource, first.Source)

	assert.Equal(t, "https://cdn.example.com/gamcheon.jpg", photos[1].ImageURL)
	assert.Empty(t, photos[1].ThumbnailURL)
}

func TestCrawler_FallsBackToListItems(t *testing.T) {
	c, transport := newMockCrawler(t)
	transport.RegisterResponder(http.MethodGet, "https://gallery.test/index.do",
		httpmock.NewStringResponder(http.StatusOK, listPage))

	photos, err := c.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "자갈치시장", photos[0].Title)
}

func TestCrawler_CrawlStopsOnEmptyPage(t *testing.T) {
	c, transport := newMockCrawler(t)
	transport.RegisterResponderWithQuery(http.MethodGet, "https://gallery.test/index.do",
		map[string]string{
			"menuCd": "DOM_000000204009000000", "rgt_type_code": "1", "list_type": "TYPE_SMALL_CARD",
			"order_type": "VIEW", "listCntPerPage2": "15", "page_no": "1",
		},
		httpmock.NewStringResponder(http.StatusOK, cardPage))
	transport.RegisterResponderWithQuery(http.MethodGet, "https://gallery.test/index.do",
		map[string]string{
			"menuCd": "DOM_000000204009000000", "rgt_type_code": "1", "list_type": "TYPE_SMALL_CARD",
			"order_type": "VIEW", "listCntPerPage2": "15", "page_no": "2",
		},
		httpmock.NewStringResponder(http.StatusOK, "<html><body></body></html>"))

	photos, err := c.Crawl(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, photos, 2)
	assert.Equal(t, 2, transport.GetTotalCallCount())
}

func TestCrawler_Non200(t *testing.T) {
	c, transport := newMockCrawler(t)
	transport.RegisterResponder(http.MethodGet, "https://gallery.test/index.do",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, ""))

	photos, err := c.Crawl(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Empty(t, photos)
}

func TestOrganize(t *testing.T) {
	photos := []Photo{
		{Title: "광안대교 불꽃축제"},
		{Title: "BIFF 광장"},
		{Title: "감천동 골목"},
		{Title: "서울 남산"},
	}
	got := Organize(photos)

	assert.Len(t, got["광안리"], 1)
	assert.Len(t, got["부산국제영화제"], 1)
	assert.Len(t, got["감천문화마을"], 1)
	assert.Len(t, got, 3)
}
