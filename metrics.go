package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "site_http_requests_total",
		Help: "Requests served by the site, by route and status code.",
	}, []string{"route", "status"})

	pageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "site_http_request_duration_seconds",
		Help:    "Time to serve a request, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	contactOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "site_contact_submissions_total",
		Help: "Contact form submissions, by outcome.",
	}, []string{"outcome"})
)

// metricsMiddleware records every request against its route pattern, so
// /blog/:identifier is one series however many posts exist.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		pageRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		pageDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
