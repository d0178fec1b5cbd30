package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/wordbook/internal/adapter/dict"
	"github.com/eslsoft/wordbook/internal/adapter/mapping"
	"github.com/eslsoft/wordbook/internal/entity"
	"github.com/eslsoft/wordbook/internal/repository"
	"github.com/eslsoft/wordbook/internal/usecase"
)

type wordUsecase interface {
	AddWord(ctx context.Context, userID int64, word *entity.Word) (*entity.Word, error)
	RemoveWord(ctx context.Context, userID, id int64) error
	UpdateWord(ctx context.Context, userID, id int64, update entity.WordUpdate) error
	UpdateAIContent(ctx context.Context, userID, id int64, aiContent string) error
	ListWords(ctx context.Context, userID int64, page repository.Pagination) (*usecase.WordPage, error)
	SearchWords(ctx context.Context, userID int64, keyword string) ([]*entity.Word, error)
	WordsInRange(ctx context.Context, userID, startID, endID int64) ([]*entity.Word, error)
	WordByOrder(ctx context.Context, userID, order int64) (*entity.Word, error)
	CheckWord(ctx context.Context, userID int64, word string) (*entity.ExistsResult, error)
}

type explainer interface {
	Explain(ctx context.Context, word string) (string, error)
}

type suggester interface {
	Suggest(ctx context.Context, keyword string) ([]dict.Suggestion, error)
}

type phoneticLookup interface {
	Phonetic(ctx context.Context, word string) (string, error)
}

// API serves the vocabulary REST surface.
type API struct {
	words     wordUsecase
	ai        explainer
	suggest   suggester
	phonetics phoneticLookup
	logger    *logrus.Logger
	mux       *http.ServeMux
}

func NewAPI(words wordUsecase, ai explainer, suggest suggester, phonetics phoneticLookup, logger *logrus.Logger) *API {
	api := &API{
		words:     words,
		ai:        ai,
		suggest:   suggest,
		phonetics: phonetics,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	api.mount()
	return api
}

func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.mux.ServeHTTP(w, r)
}

func (api *API) mount() {
	api.mux.HandleFunc("POST /api/words", api.handleAddWord)
	api.mux.HandleFunc("GET /api/words", api.handleListWords)
	api.mux.HandleFunc("GET /api/words/search", api.handleSearchWords)
	api.mux.HandleFunc("GET /api/words/check", api.handleCheckWord)
	api.mux.HandleFunc("GET /api/words/order/{order}", api.handleWordByOrder)
	api.mux.HandleFunc("DELETE /api/words/{id}", api.handleRemoveWord)
	api.mux.HandleFunc("PATCH /api/words/{id}", api.handleUpdateWord)
	api.mux.HandleFunc("PATCH /api/words/{id}/ai-content", api.handleUpdateAIContent)
	api.mux.HandleFunc("GET /api/quiz", api.handleQuizRange)
	api.mux.HandleFunc("GET /api/suggestions", api.handleSuggestions)
	api.mux.HandleFunc("GET /api/ai-content", api.handleAIContent)
	api.mux.HandleFunc("GET /api/phonetic", api.handlePhonetic)
}

func (api *API) caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing authentication")
	}
	return userID, ok
}

func idFromPath(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

type addWordRequest struct {
	Word        string `json:"word"`
	Description string `json:"description"`
	Note        string `json:"note"`
	AIContent   string `json:"ai_content"`
}

func (api *API) handleAddWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}

	var req addWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Word == "" {
		writeError(w, http.StatusBadRequest, "Word is required")
		return
	}

	created, err := api.words.AddWord(r.Context(), userID, &entity.Word{
		Word:        req.Word,
		Description: req.Description,
		Note:        req.Note,
		AIContent:   req.AIContent,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Word added successfully", mapping.ToAPIWord(created))
}

func (api *API) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Word ID is required")
		return
	}

	if err := api.words.RemoveWord(r.Context(), userID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Word removed successfully", nil)
}

type updateWordRequest struct {
	Description *string `json:"description"`
	Note        *string `json:"note"`
	AIContent   *string `json:"ai_content"`
}

func (api *API) handleUpdateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Word ID is required")
		return
	}

	var req updateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := entity.WordUpdate{
		Description: req.Description,
		Note:        req.Note,
		AIContent:   req.AIContent,
	}
	if update.Empty() {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := api.words.UpdateWord(r.Context(), userID, id, update); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Word updated successfully", nil)
}

type updateAIContentRequest struct {
	AIContent string `json:"ai_content"`
}

func (api *API) handleUpdateAIContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}
	id, ok := idFromPath(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Word ID is required")
		return
	}

	var req updateAIContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := api.words.UpdateAIContent(r.Context(), userID, id, req.AIContent); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "AI content updated successfully", nil)
}

func (api *API) handleListWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}

	page, ok := positiveQueryInt(r, "page", 1)
	if !ok {
		writeError(w, http.StatusBadRequest, "page must be a positive number")
		return
	}
	limit, ok := positiveQueryInt(r, "limit", 10)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a positive number")
		return
	}

	result, err := api.words.ListWords(r.Context(), userID, repository.Pagination{
		PageNo:   int32(page),
		PageSize: int32(limit),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Words retrieved successfully", mapping.ToAPIWordPage(result))
}

func positiveQueryInt(r *http.Request, name string, fallback int64) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func (api *API) handleSearchWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "Keyword is required")
		return
	}

	words, err := api.words.SearchWords(r.Context(), userID, keyword)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Words searched successfully", mapping.ToAPIWords(words))
}

func (api *API) handleQuizRange(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}

	startID, err1 := strconv.ParseInt(r.URL.Query().Get("startId"), 10, 64)
	endID, err2 := strconv.ParseInt(r.URL.Query().Get("endId"), 10, 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "startId and endId must be valid numbers")
		return
	}
	if startID > endID {
		writeError(w, http.StatusBadRequest, "startId must be less than or equal to endId")
		return
	}

	words, err := api.words.WordsInRange(r.Context(), userID, startID, endID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Quiz data retrieved successfully", mapping.ToAPIWords(words))
}

func (api *API) handleWordByOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}

	order, err := strconv.ParseInt(r.PathValue("order"), 10, 64)
	if err != nil || order <= 0 {
		writeError(w, http.StatusBadRequest, "Order must be a positive number")
		return
	}

	word, err := api.words.WordByOrder(r.Context(), userID, order)
	if err != nil {
		if errors.Is(err, entity.ErrWordNotFound) {
			writeError(w, http.StatusNotFound, "Word not found at this order")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Word retrieved successfully", mapping.ToAPIWord(word))
}

func (api *API) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := api.caller(w, r)
	if !ok {
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "Word is required")
		return
	}

	result, err := api.words.CheckWord(r.Context(), userID, word)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Word checked successfully", mapping.ToAPIExistsResult(result))
}

func (api *API) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.caller(w, r); !ok {
		return
	}
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "Keyword is required")
		return
	}

	suggestions, err := api.suggest.Suggest(r.Context(), keyword)
	if err != nil {
		api.logger.WithError(err).Error("fetch suggestions")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, "Suggested words retrieved successfully", suggestions)
}

// handleAIContent is best-effort: a provider failure is logged and an empty
// explanation returned, so the client can simply retry the generation.
func (api *API) handleAIContent(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.caller(w, r); !ok {
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "Word is required")
		return
	}

	content, err := api.ai.Explain(r.Context(), word)
	if err != nil {
		api.logger.WithError(err).WithField("word", word).Warn("ai content generation failed")
		content = ""
	}
	writeJSON(w, http.StatusOK, "AI content retrieved successfully", content)
}

func (api *API) handlePhonetic(w http.ResponseWriter, r *http.Request) {
	if _, ok := api.caller(w, r); !ok {
		return
	}
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "Word is required")
		return
	}

	phonetic, err := api.phonetics.Phonetic(r.Context(), word)
	if err != nil {
		api.logger.WithError(err).Error("fetch phonetic")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, "Phonetic retrieved successfully", phonetic)
}
