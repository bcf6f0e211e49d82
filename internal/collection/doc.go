// Package collection holds small generic concurrency-safe containers.
package collection
