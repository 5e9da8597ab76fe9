package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := newRequestContext(router, r, w)

		defer func() {
			handleResponse(ctx)
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		if r.Method != method {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Not supported method %s", r.Method))
			return
		}

		var req Request
		if err := bindRequest(r, method, &req); err != nil {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			return
		}

		for _, middleware := range router.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.SetError(ctx, err)
			return
		}

		xcontext.SetResponse(ctx, resp)

		for _, middleware := range router.afters {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}
	}
}

func newRequestContext(router *Router, r *http.Request, w http.ResponseWriter) context.Context {
	ctx := r.Context()
	ctx = xcontext.WithDB(ctx, router.db)
	ctx = xcontext.WithLogger(ctx, router.logger)
	ctx = xcontext.WithConfigs(ctx, router.cfg)
	ctx = xcontext.WithTokenEngine(ctx, router.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, router.sessionStore)
	ctx = xcontext.WithSnowFlake(ctx, router.snowFlake)
	ctx = xcontext.WithHTTPRequest(ctx, r)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithRequestState(ctx)
	return ctx
}

// bindRequest fills the request object from the URL query for GET, or from
// the JSON body otherwise. Query binding supports the scalar kinds the
// request models use.
func bindRequest(r *http.Request, method string, req any) error {
	if method != http.MethodGet {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}

		if len(b) == 0 {
			return nil
		}

		return json.Unmarshal(b, req)
	}

	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name, _, _ := strings.Cut(v.Type().Field(i).Tag.Get("json"), ",")
		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(val)

		case reflect.Slice:
			if v.Field(i).Type().Elem().Kind() == reflect.String {
				v.Field(i).Set(reflect.ValueOf(r.URL.Query()[name]))
			}
		}
	}

	return nil
}
