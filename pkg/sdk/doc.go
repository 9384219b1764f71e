// Package scenttwin provides a Go client for the scenttwin perfume search API.
//
// The API answers two kinds of questions:
//   - "what smells like this perfume?" (details plus similar alternatives)
//   - "which perfumes match these notes?" (a short list of suggestions)
//
// # Usage
//
//	client, _ := scenttwin.New("https://scenttwin.example.com",
//	    scenttwin.WithAPIKey(os.Getenv("SCENTTWIN_API_KEY")),
//	)
//	details, err := client.FindPerfumeDetailsAndDupes(ctx, "Sauvage Dior")
//	var apiErr *scenttwin.APIError
//	if errors.As(err, &apiErr) {
//	    log.Println(apiErr.StatusCode, apiErr.Message)
//	}
//
//	suggestions, _ := client.FindPerfumesByNotes(ctx, "baunilha e âmbar")
package scenttwin
