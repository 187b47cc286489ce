package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/millionaire/internal/leaderboard"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each checked dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type gamePath struct {
	ID string `path:"id"`
}

type answerInput struct {
	gamePath
	AnswerRequest
}

type helpInput struct {
	gamePath
	HelpRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Millionaire API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Millionaire trivia game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/login")
	postLogin.SetSummary("Log in")
	postLogin.SetDescription("Authenticate with email and password. Sets the session cookie and returns the token.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(LoginResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/logout")
	postLogout.SetSummary("Log out")
	postLogout.SetDescription("Deletes the session and clears the cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/me")
	getMe.SetSummary("Current user")
	getMe.SetDescription("Returns the authenticated user with their balance.")
	getMe.AddRespStructure(User{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/users
	listUsers, _ := r.NewOperationContext(http.MethodGet, "/api/users")
	listUsers.SetSummary("Leaderboard")
	listUsers.SetDescription("Returns users ordered by balance, highest first.")
	listUsers.AddRespStructure([]leaderboard.Entry{}, openapi.WithHTTPStatus(http.StatusOK))
	listUsers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listUsers)

	// GET /api/users/{id}
	getUser, _ := r.NewOperationContext(http.MethodGet, "/api/users/{id}")
	getUser.SetSummary("User profile")
	getUser.SetDescription("Returns a user and their finished games.")
	getUser.AddReqStructure(gamePath{})
	getUser.AddRespStructure(UserProfileResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getUser)

	// GET /api/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	listGames.SetSummary("List own games")
	listGames.SetDescription("Returns the current user's games, newest first.")
	listGames.AddRespStructure([]GameSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listGames)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Start game")
	createGame.SetDescription("Starts a game with one random question per level. Fails if a game is already in progress.")
	createGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(createGame)

	// GET /api/games/{id}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{id}")
	getGame.SetSummary("Show game")
	getGame.SetDescription("Returns the game with its derived status and the question in play.")
	getGame.AddReqStructure(gamePath{})
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// PUT /api/games/{id}/answer
	putAnswer, _ := r.NewOperationContext(http.MethodPut, "/api/games/{id}/answer")
	putAnswer.SetSummary("Submit answer")
	putAnswer.SetDescription("Grades one key, or two while double answer is active on the question.")
	putAnswer.AddReqStructure(answerInput{})
	putAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	putAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(putAnswer)

	// PUT /api/games/{id}/help
	putHelp, _ := r.NewOperationContext(http.MethodPut, "/api/games/{id}/help")
	putHelp.SetSummary("Use help")
	putHelp.SetDescription("Applies audience_help, fifty_fifty, friend_call or double_answer to the current question. Each type is available once per game.")
	putHelp.AddReqStructure(helpInput{})
	putHelp.AddRespStructure(HelpResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putHelp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putHelp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(putHelp)

	// PUT /api/games/{id}/take_money
	putTakeMoney, _ := r.NewOperationContext(http.MethodPut, "/api/games/{id}/take_money")
	putTakeMoney.SetSummary("Take the money")
	putTakeMoney.SetDescription("Ends the game with the prize for the last answered level.")
	putTakeMoney.AddReqStructure(gamePath{})
	putTakeMoney.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putTakeMoney.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(putTakeMoney)

	// GET /api/games/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{id}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of game transitions. The session token may be passed as a query parameter.")
	getEvents.AddReqStructure(gamePath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
