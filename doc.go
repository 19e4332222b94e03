// Package mcd is a client for the Monte Carlo data observability API.
//
// A Client authenticates with an API key id and token, read from explicit
// options, the MCD_DEFAULT_API_ID and MCD_DEFAULT_API_TOKEN environment
// variables or ~/.mcd/profiles.ini:
//
//	client, err := mcd.NewClient(mcd.WithProfile("staging"))
//	if err != nil {
//		return err
//	}
//	incidents, err := client.AllIncidents(ctx, mcd.IncidentsParams{
//		Severities: []schema.IncidentSeverity{schema.IncidentSeveritySev1},
//	})
//
// Each root field of the API has a method returning the types of package
// schema. Query, Mutate and Exec run other selections.
package mcd
