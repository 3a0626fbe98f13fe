// Package telemetry exposes live Book state as Prometheus metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lukiod/LOB-Engine/internal/orderbook"
)

// BookCollector is a prometheus.Collector that polls a Book's
// query surface on every scrape rather than updating counters
// inline with every mutation. The Book is read-only from this
// collector's perspective: Collect never mutates it.
type BookCollector struct {
	book *orderbook.Book

	bestBid    *prometheus.Desc
	bestAsk    *prometheus.Desc
	orderCount *prometheus.Desc
	obi        *prometheus.Desc
	microprice *prometheus.Desc
	depth      *prometheus.Desc
}

// NewBookCollector constructs a collector over book. Register it with
// a prometheus.Registerer to expose it on a scrape endpoint.
func NewBookCollector(book *orderbook.Book) *BookCollector {
	return &BookCollector{
		book: book,
		bestBid: prometheus.NewDesc(
			"lob_best_bid", "Current best bid price, or the invalid-price sentinel if empty.", nil, nil),
		bestAsk: prometheus.NewDesc(
			"lob_best_ask", "Current best ask price, or the invalid-price sentinel if empty.", nil, nil),
		orderCount: prometheus.NewDesc(
			"lob_order_count", "Number of named orders resting in the book.", nil, nil),
		obi: prometheus.NewDesc(
			"lob_order_book_imbalance", "Order book imbalance at the best level, in [-1, 1].", nil, nil),
		microprice: prometheus.NewDesc(
			"lob_microprice", "Volume-weighted top-of-book price.", nil, nil),
		depth: prometheus.NewDesc(
			"lob_depth", "Number of distinct price levels resting on a side.", []string{"side"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *BookCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.bestBid
	ch <- c.bestAsk
	ch <- c.orderCount
	ch <- c.obi
	ch <- c.microprice
	ch <- c.depth
}

// Collect implements prometheus.Collector, reading a consistent
// snapshot of book state at scrape time. Because the Book is
// single-threaded, Collect must run on the same goroutine that owns
// the Book, or behind the caller's own serialization. Scraping from a
// separate goroutine without synchronization would race with live
// mutation.
func (c *BookCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.bestBid, prometheus.GaugeValue, float64(c.book.BestBid()))
	ch <- prometheus.MustNewConstMetric(c.bestAsk, prometheus.GaugeValue, float64(c.book.BestAsk()))
	ch <- prometheus.MustNewConstMetric(c.orderCount, prometheus.GaugeValue, float64(c.book.OrderCount()))
	ch <- prometheus.MustNewConstMetric(c.obi, prometheus.GaugeValue, c.book.OBI())
	ch <- prometheus.MustNewConstMetric(c.microprice, prometheus.GaugeValue, c.book.Microprice())
	ch <- prometheus.MustNewConstMetric(c.depth, prometheus.GaugeValue, float64(c.book.Depth(orderbook.Buy)), "buy")
	ch <- prometheus.MustNewConstMetric(c.depth, prometheus.GaugeValue, float64(c.book.Depth(orderbook.Sell)), "sell")
}
