package constants

import "time"

var ImageLoad = struct {
	Timeout        time.Duration
	RequestTimeout time.Duration
	UserAgent      string
}{
	Timeout:        8 * time.Second,  // 8초 - 사진 로딩 타임아웃 (초과 시 아이콘 폴백)
	RequestTimeout: 15 * time.Second, // HTTP 클라이언트 상한
	UserAgent:      "Mozilla/5.0 (compatible; BusanTourBot/1.0)",
}

var PhotoSource = struct {
	BaseURL string
	Size    string
}{
	BaseURL: "https://source.unsplash.com",
	Size:    "800x600",
}

var Render = struct {
	Concurrency    int
	AnimationStep  time.Duration
	FadeDuration   time.Duration
	FadeStartDelay time.Duration
	WaitGrace      time.Duration
}{
	Concurrency:    16,
	AnimationStep:  100 * time.Millisecond, // 카드 index * 0.1초
	FadeDuration:   300 * time.Millisecond,
	FadeStartDelay: 50 * time.Millisecond,
	WaitGrace:      2 * time.Second, // 배치 완료 대기 시 타임아웃 이후 여유
}

var CacheKeys = struct {
	PhotoURLPrefix string
}{
	PhotoURLPrefix: "busan:photo_url:",
}

var WebSocketConfig = struct {
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
}{
	MaxReconnectAttempts: 5,
	ReconnectDelay:       5 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,                // 3회 연속 실패 시 Circuit OPEN
	ResetTimeout:        30 * time.Second, // 기본 재시도 대기 시간 (30초)
	HealthCheckInterval: 1 * time.Minute,
	HealthCheckTimeout:  5 * time.Second,
}

var MapsConfig = struct {
	SearchURL    string
	RegionSuffix string
}{
	SearchURL:    "https://www.google.com/maps/search/",
	RegionSuffix: "부산",
}

var StringLimits = struct {
	Reason      int
	Description int
	Query       int
}{
	Reason:      80,
	Description: 300,
	Query:       100,
}
