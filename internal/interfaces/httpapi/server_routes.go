package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, liveFeed http.Handler) {
	mux.HandleFunc("GET /v1/auction", handler.GetAuction)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/bids", handler.GetBidHistory)
	mux.HandleFunc("GET /v1/owners", handler.ListOwners)
	mux.HandleFunc("GET /v1/owners/{ownerID}/summary", handler.GetOwnerSummary)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/innings/{inningsID}/crease", handler.GetCrease)
	mux.HandleFunc("GET /v1/innings/{inningsID}/scorecard", handler.GetScorecard)

	if liveFeed != nil {
		mux.Handle("GET /v1/live", liveFeed)
	}
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedAuctionRoutes(mux, handler, verifier)
	registerAuthorizedScoringRoutes(mux, handler, verifier)
}

func registerAuthorizedAuctionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/auction/start", RequireAuth(verifier, http.HandlerFunc(handler.StartAuction)))
	mux.Handle("POST /v1/auction/bids", RequireAuth(verifier, http.HandlerFunc(handler.PlaceBid)))
	mux.Handle("POST /v1/auction/close", RequireAuth(verifier, http.HandlerFunc(handler.CloseAuction)))
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("POST /v1/owners", RequireAuth(verifier, http.HandlerFunc(handler.CreateOwner)))
}

func registerAuthorizedScoringRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/matches/{matchID}/innings", RequireAuth(verifier, http.HandlerFunc(handler.StartInnings)))
	mux.Handle("POST /v1/matches/{matchID}/complete", RequireAuth(verifier, http.HandlerFunc(handler.CompleteMatch)))
	mux.Handle("POST /v1/matches/{matchID}/quick-score", RequireAuth(verifier, http.HandlerFunc(handler.QuickScoreMatch)))
	mux.Handle("POST /v1/innings/{inningsID}/striker", RequireAuth(verifier, http.HandlerFunc(handler.SelectStriker)))
	mux.Handle("POST /v1/innings/{inningsID}/non-striker", RequireAuth(verifier, http.HandlerFunc(handler.SelectNonStriker)))
	mux.Handle("POST /v1/innings/{inningsID}/bowler", RequireAuth(verifier, http.HandlerFunc(handler.SelectBowler)))
	mux.Handle("POST /v1/innings/{inningsID}/balls", RequireAuth(verifier, http.HandlerFunc(handler.RecordBall)))
	mux.Handle("POST /v1/innings/{inningsID}/balls/undo", RequireAuth(verifier, http.HandlerFunc(handler.UndoLastBall)))
	mux.Handle("POST /v1/innings/{inningsID}/retire", RequireAuth(verifier, http.HandlerFunc(handler.RetireHurt)))
	mux.Handle("POST /v1/innings/{inningsID}/retire/return", RequireAuth(verifier, http.HandlerFunc(handler.ReturnFromRetiredHurt)))
	mux.Handle("POST /v1/innings/{inningsID}/end", RequireAuth(verifier, http.HandlerFunc(handler.EndInnings)))
}
