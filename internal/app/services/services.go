// Package services holds the business logic behind every channel.
//
//   - ResolutionService: classifies transfer requests and applies administrator decisions
//   - CatalogService: school and course lookups and catalog curation
//   - AuthService: administrator login
package services
