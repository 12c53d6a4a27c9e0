package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

type LoadTestConfig struct {
	BaseURL             string
	ConcurrentUsers     int
	TestDurationSeconds int
	RampUpSeconds       int
}

type TestResult struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	CatalogReads       int64
	PreviewRequests    int64
	ResponseTimes      []time.Duration
	Errors             map[string]int64
	mutex              sync.RWMutex
}

type PerformanceMetrics struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalDuration   time.Duration
	ThroughputRPS   float64
	P50ResponseTime time.Duration
	P95ResponseTime time.Duration
	P99ResponseTime time.Duration
	ErrorRate       float64
}

type LoadTester struct {
	config          *LoadTestConfig
	result          *TestResult
	client          *http.Client
	productsCache   []string
	cacheMutex      sync.RWMutex
	lastCacheUpdate time.Time
}

type ProductResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Currency       string `json:"currency"`
}

func NewLoadTester(config *LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		result: &TestResult{
			ResponseTimes: make([]time.Duration, 0),
			Errors:        make(map[string]int64),
		},
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        1000,
				MaxIdleConnsPerHost: 100,
				MaxConnsPerHost:     200,
			},
		},
		productsCache: make([]string, 0),
	}
}

func (lt *LoadTester) recordResponse(duration time.Duration, success bool, operation string, err error) {
	lt.result.mutex.Lock()
	defer lt.result.mutex.Unlock()

	atomic.AddInt64(&lt.result.TotalRequests, 1)
	lt.result.ResponseTimes = append(lt.result.ResponseTimes, duration)

	if success {
		atomic.AddInt64(&lt.result.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&lt.result.FailedRequests, 1)
		if err != nil {
			lt.result.Errors[fmt.Sprintf("%s: %s", operation, err.Error())]++
		}
	}
}

func (lt *LoadTester) refreshProducts() {
	lt.cacheMutex.Lock()
	defer lt.cacheMutex.Unlock()

	if time.Since(lt.lastCacheUpdate) < 10*time.Second && len(lt.productsCache) > 0 {
		return
	}

	start := time.Now()
	resp, err := lt.client.Get(lt.config.BaseURL + "/products?limit=100")
	duration := time.Since(start)
	if err != nil {
		lt.recordResponse(duration, false, "list_products", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		lt.recordResponse(duration, false, "list_products", fmt.Errorf("status %d", resp.StatusCode))
		return
	}

	var products []ProductResponse
	if err := json.Unmarshal(body, &products); err != nil {
		lt.recordResponse(duration, false, "list_products", err)
		return
	}

	lt.recordResponse(duration, true, "list_products", nil)
	atomic.AddInt64(&lt.result.CatalogReads, 1)

	lt.productsCache = lt.productsCache[:0]
	for _, p := range products {
		lt.productsCache = append(lt.productsCache, p.ID)
	}
	lt.lastCacheUpdate = time.Now()
}

func (lt *LoadTester) randomProduct() string {
	lt.cacheMutex.RLock()
	defer lt.cacheMutex.RUnlock()

	if len(lt.productsCache) == 0 {
		return ""
	}
	return lt.productsCache[rand.Intn(len(lt.productsCache))]
}

func (lt *LoadTester) browseProduct() {
	productID := lt.randomProduct()
	if productID == "" {
		return
	}

	start := time.Now()
	resp, err := lt.client.Get(lt.config.BaseURL + "/products/" + productID)
	duration := time.Since(start)
	if err != nil {
		lt.recordResponse(duration, false, "get_product", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	lt.recordResponse(duration, resp.StatusCode == http.StatusOK, "get_product", fmt.Errorf("status %d", resp.StatusCode))
	atomic.AddInt64(&lt.result.CatalogReads, 1)
}

func (lt *LoadTester) requestPreview() {
	productID := lt.randomProduct()
	if productID == "" {
		return
	}

	start := time.Now()
	resp, err := lt.client.Get(lt.config.BaseURL + "/preview?product_id=" + productID)
	duration := time.Since(start)
	if err != nil {
		lt.recordResponse(duration, false, "preview", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	// 404 is a legitimate answer for products without a preview asset.
	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound
	lt.recordResponse(duration, ok, "preview", fmt.Errorf("status %d", resp.StatusCode))
	atomic.AddInt64(&lt.result.PreviewRequests, 1)
}

func (lt *LoadTester) simulateShopper(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			lt.refreshProducts()

			switch rand.Intn(3) {
			case 0:
				lt.browseProduct()
			case 1:
				lt.browseProduct()
			case 2:
				lt.requestPreview()
			}

			time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
		}
	}
}

func (lt *LoadTester) Run() *PerformanceMetrics {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(lt.config.TestDurationSeconds)*time.Second)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	start := time.Now()
	var wg sync.WaitGroup

	rampDelay := time.Duration(0)
	if lt.config.RampUpSeconds > 0 && lt.config.ConcurrentUsers > 0 {
		rampDelay = time.Duration(lt.config.RampUpSeconds) * time.Second / time.Duration(lt.config.ConcurrentUsers)
	}

	for i := 0; i < lt.config.ConcurrentUsers; i++ {
		wg.Add(1)
		go lt.simulateShopper(ctx, &wg)
		time.Sleep(rampDelay)
	}

	wg.Wait()
	end := time.Now()

	return lt.computeMetrics(start, end)
}

func (lt *LoadTester) computeMetrics(start, end time.Time) *PerformanceMetrics {
	lt.result.mutex.RLock()
	defer lt.result.mutex.RUnlock()

	total := lt.result.TotalRequests
	metrics := &PerformanceMetrics{
		StartTime:     start,
		EndTime:       end,
		TotalDuration: end.Sub(start),
	}

	if metrics.TotalDuration > 0 {
		metrics.ThroughputRPS = float64(total) / metrics.TotalDuration.Seconds()
	}
	if total > 0 {
		metrics.ErrorRate = float64(lt.result.FailedRequests) / float64(total) * 100
	}

	times := make([]time.Duration, len(lt.result.ResponseTimes))
	copy(times, lt.result.ResponseTimes)
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	if len(times) > 0 {
		metrics.P50ResponseTime = times[len(times)*50/100]
		metrics.P95ResponseTime = times[len(times)*95/100]
		p99 := len(times) * 99 / 100
		if p99 >= len(times) {
			p99 = len(times) - 1
		}
		metrics.P99ResponseTime = times[p99]
	}

	return metrics
}

func main() {
	config := &LoadTestConfig{
		BaseURL:             "http://localhost:8080",
		ConcurrentUsers:     100,
		TestDurationSeconds: 60,
		RampUpSeconds:       10,
	}

	if url := os.Getenv("LOAD_TEST_BASE_URL"); url != "" {
		config.BaseURL = url
	}

	fmt.Printf("Starting load test against %s: %d shoppers, %ds\n",
		config.BaseURL, config.ConcurrentUsers, config.TestDurationSeconds)

	tester := NewLoadTester(config)
	metrics := tester.Run()

	fmt.Printf("\n--- Results ---\n")
	fmt.Printf("Duration:       %s\n", metrics.TotalDuration.Round(time.Millisecond))
	fmt.Printf("Throughput:     %.1f req/s\n", metrics.ThroughputRPS)
	fmt.Printf("Error rate:     %.2f%%\n", metrics.ErrorRate)
	fmt.Printf("P50 latency:    %s\n", metrics.P50ResponseTime)
	fmt.Printf("P95 latency:    %s\n", metrics.P95ResponseTime)
	fmt.Printf("P99 latency:    %s\n", metrics.P99ResponseTime)

	tester.result.mutex.RLock()
	defer tester.result.mutex.RUnlock()
	if len(tester.result.Errors) > 0 {
		fmt.Printf("\n--- Errors ---\n")
		for msg, count := range tester.result.Errors {
			fmt.Printf("%6d  %s\n", count, msg)
		}
	}
}
