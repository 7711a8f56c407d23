// Package weavegate provides an embedded Go client for semantic search
// over a Weaviate instance. It wires the same use cases the HTTP API
// serves, without the HTTP layer in between.
//
//	client, err := weavegate.New(ctx, "localhost:8080",
//	    weavegate.WithAPIKey(os.Getenv("WEAVIATE_API_KEY")),
//	)
//	if err != nil { ... }
//
//	results, err := client.Query(ctx, weavegate.QueryRequest{
//	    Collection: "Articles",
//	    Query:      "solar panel maintenance",
//	    TopK:       3,
//	    Filter: &weavegate.Filter{
//	        Conditions: []weavegate.FilterCondition{
//	            {Field: "year", Operator: "gte", Value: 2020},
//	        },
//	    },
//	})
package weavegate
