package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/pkg/convert"
	"github.com/taibuivan/yomira-press/pkg/pagination"
	"github.com/taibuivan/yomira-press/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the /authors endpoints. Moderators edit the directory;
// only admins delete from it.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/authors", handler.listAuthors)
	api.Get("/authors/{id}", handler.getAuthor)

	api.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleModerator))

		staff.Post("/authors", handler.createAuthor)
		staff.Patch("/authors/{id}", handler.updateAuthor)
		staff.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/authors/{id}", handler.deleteAuthor)
	})
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	authors, total, err := handler.service.ListAuthors(request.Context(), Filter{Query: request.URL.Query().Get("q")}, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, authors, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	author, err := handler.service.GetAuthor(request.Context(), convert.ToInt(requestutil.ID(request, "id")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

type authorRequest struct {
	Name     *string   `json:"name"`
	NameAlt  *[]string `json:"name_alt"`
	Bio      *string   `json:"bio"`
	ImageURL *string   `json:"image_url"`
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var input authorRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author := &Author{
		Name:     pointer.Val(input.Name),
		NameAlt:  pointer.Val(input.NameAlt),
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	}
	if err := handler.service.CreateAuthor(request.Context(), author); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, author)
}

func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	var input authorRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.service.UpdateAuthor(request.Context(), convert.ToInt(requestutil.ID(request, "id")), UpdateInput{
		Name:     input.Name,
		NameAlt:  input.NameAlt,
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAuthor(request.Context(), convert.ToInt(requestutil.ID(request, "id"))); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
