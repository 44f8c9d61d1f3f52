package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dejobratic/vestuario/internal/catalog/app"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/dejobratic/vestuario/internal/catalog/query"
	"github.com/dejobratic/vestuario/internal/catalog/readmodel"
	"github.com/go-chi/chi/v5"
)

// collection describes how one resource is exposed.
type collection struct {
	slug     string
	aliases  []string
	pageAlts []string
	filter   filterParser
}

// mountCollection registers the CRUD, paging, filter and count routes of res.
func mountCollection[T any, I app.Input[T], P app.Patch[T]](
	router chi.Router,
	h *Handler,
	res *app.Resource[T, I, P],
	c collection,
) {
	base := "/" + c.slug

	router.Post(base, create(h, res))
	router.Get(base, func(w http.ResponseWriter, r *http.Request) {
		items, err := res.ListAll(r.Context())
		h.ok(w, r, items, err)
	})

	paginate := func(w http.ResponseWriter, r *http.Request) {
		p := newParams(r)
		page := p.Int("page")
		limit := p.Int("limit")
		if err := p.Err(); err != nil {
			h.fail(w, r, err)
			return
		}

		req := readmodel.PageRequest{Page: readmodel.DefaultPage, Limit: h.defaultLimit}
		if page != nil {
			req.Page = *page
		}
		if limit != nil {
			req.Limit = *limit
		}

		result, err := res.Paginate(r.Context(), req)
		h.ok(w, r, result, err)
	}
	for _, alt := range c.pageAlts {
		router.Get(base+"/"+alt, paginate)
	}

	router.Get(base+"/filtrar", func(w http.ResponseWriter, r *http.Request) {
		p := newParams(r)
		filter := c.filter(p)
		if err := p.Err(); err != nil {
			h.fail(w, r, err)
			return
		}
		items, err := res.Filter(r.Context(), filter)
		h.ok(w, r, items, err)
	})

	count := func(w http.ResponseWriter, r *http.Request) {
		n, err := res.Count(r.Context(), query.Filter{})
		h.ok(w, r, map[string]int64{"quantidade": n}, err)
	}
	for _, name := range append([]string{c.slug}, c.aliases...) {
		router.Get("/quantidade/"+name, count)
	}

	router.Get(base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		entity, err := res.GetByID(r.Context(), id)
		h.ok(w, r, entity, err)
	})

	update := func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		var patch P
		if err := decode(r, &patch); err != nil {
			h.fail(w, r, err)
			return
		}
		entity, err := res.Update(r.Context(), id, patch)
		h.ok(w, r, entity, err)
	}
	router.Put(base+"/{id}", update)
	router.Patch(base+"/{id}", update)

	router.Delete(base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		entity, err := res.Delete(r.Context(), id)
		h.ok(w, r, entity, err)
	})
}

// create inserts a record. With an Idempotency-Key header, a retried request
// replays the first response instead of inserting again.
func create[T any, I app.Input[T], P app.Patch[T]](h *Handler, res *app.Resource[T, I, P]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
		if idemKey != "" {
			stored, err := h.service.GetIdempotentResponse(ctx, res.Name(), idemKey)
			if err != nil {
				h.fail(w, r, ports.StoreFailure("Erro ao criar o registro.", err))
				return
			}
			if stored != nil {
				replay(w, stored)
				return
			}
		}

		var in I
		if err := decode(r, &in); err != nil {
			h.fail(w, r, err)
			return
		}

		entity, err := res.Create(ctx, in)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		body, err := json.Marshal(entity)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		if idemKey != "" {
			stored := ports.StoredResponse{
				Resource:   res.Name(),
				StatusCode: http.StatusCreated,
				Body:       body,
				RecordID:   res.ID(entity),
			}
			if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
				h.logger.ErrorContext(ctx, "failed to store idempotent response",
					"resource", res.Name(),
					"error", err,
				)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}
}

func replay(w http.ResponseWriter, stored *ports.StoredResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(stored.StatusCode)
	_, _ = w.Write(stored.Body)
}
