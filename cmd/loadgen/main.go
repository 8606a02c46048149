// loadgen fires concurrent order placements at a running server to
// exercise the conditional stock decrement under contention. Point it at
// a product id and watch the success count match the available stock.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "server base URL")
		productID = flag.String("product", "", "product id to order")
		quantity  = flag.Int("quantity", 1, "quantity per order")
		requests  = flag.Int("requests", 50, "number of concurrent orders")
	)
	flag.Parse()

	if *productID == "" {
		log.Fatal("missing -product")
	}

	body, _ := json.Marshal(map[string]interface{}{
		"products": []map[string]interface{}{
			{"productId": *productID, "quantity": *quantity},
		},
	})

	client := &http.Client{Timeout: 10 * time.Second}

	var successCount, conflictCount, failCount atomic.Int32
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < *requests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, *baseURL+"/api/v1/orders", bytes.NewReader(body))
			if err != nil {
				failCount.Add(1)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", fmt.Sprintf("loadgen-user-%d", n))

			resp, err := client.Do(req)
			if err != nil {
				failCount.Add(1)
				return
			}
			resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				failCount.Add(1)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	log.Printf("done in %v", elapsed)
	log.Printf("placed:             %d", successCount.Load())
	log.Printf("insufficient stock: %d", conflictCount.Load())
	log.Printf("other failures:     %d", failCount.Load())
}
