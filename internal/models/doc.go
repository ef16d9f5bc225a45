// Package models contains the content records shared by the toursite server
// and the admin client: tours, promotions, blog posts and booking inquiries.
package models
