// Package services contains the server-side business logic of the content
// API: validation, slug assignment, search and pagination, transactional
// reordering, promotion expiry and booking inquiries.
package services
