package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/okian/fitscore/internal/adapters/http/api"
	"github.com/okian/fitscore/internal/adapters/repository"
	service "github.com/okian/fitscore/internal/app"
	"github.com/okian/fitscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

// Mock implementations for testing
type mockDependencies struct {
	scoreErr error
	runs     []repository.Run
	runsErr  error
	pathErr  error
	scored   int
}

func (m *mockDependencies) ScoreWorkbook(ctx context.Context, r io.Reader) (service.Result, error) {
	m.scored++
	if m.scoreErr != nil {
		return service.Result{}, m.scoreErr
	}
	return service.Result{Run: repository.Run{ID: "r1", TotalFile: "total.xlsx"}}, nil
}

func (m *mockDependencies) Runs(ctx context.Context, n int) ([]repository.Run, error) {
	if m.runsErr != nil {
		return nil, m.runsErr
	}
	if n > len(m.runs) {
		return m.runs, nil
	}
	return m.runs[:n], nil
}

func (m *mockDependencies) ReportPath(ctx context.Context, runID, name string) (string, error) {
	if m.pathErr != nil {
		return "", m.pathErr
	}
	return "", fmt.Errorf("%w: %s", service.ErrFileNotFound, name)
}

func workbook(rows ...[]any) []byte {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			panic(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func uploadRequest(filename string, content []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		panic(err)
	}
	_, _ = part.Write(content)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/score", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newMux(deps api.Dependencies, opts ...api.Option) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, opts...).Register(mux)
	return mux
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func errorCode(w *httptest.ResponseRecorder) string {
	var resp struct {
		Code string `json:"code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Code
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("Then health serves the metrics registry", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then unknown paths are not found", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/unknown", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then wrong methods are not found", func() {
			So(serve(mux, httptest.NewRequest(http.MethodGet, "/score", nil)).Code, ShouldEqual, http.StatusNotFound)
			So(serve(mux, httptest.NewRequest(http.MethodPost, "/runs", nil)).Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestScoreHandler(t *testing.T) {
	Convey("Given the score endpoint", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When the request carries no file", func() {
			w := serve(mux, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("x")))

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.scored, ShouldEqual, 0)
			})
		})

		Convey("When the file is not an xlsx", func() {
			w := serve(mux, uploadRequest("raw.csv", []byte("a,b")))

			Convey("Then it is rejected before scoring", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(errorCode(w), ShouldEqual, "unsupported_file")
				So(deps.scored, ShouldEqual, 0)
			})
		})

		Convey("When no segment is valid", func() {
			deps.scoreErr = fmt.Errorf("%w: 1 segment(s) rejected", service.ErrNoValidSegments)
			w := serve(mux, uploadRequest("raw.xlsx", []byte("x")))

			Convey("Then it is unprocessable", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(errorCode(w), ShouldEqual, "no_valid_segments")
			})
		})

		Convey("When scoring fails unexpectedly", func() {
			deps.scoreErr = errors.New("disk full")
			w := serve(mux, uploadRequest("raw.XLSX", []byte("x")))
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When the upload exceeds the limit", func() {
			small := newMux(deps, api.WithMaxUploadBytes(64))
			w := serve(small, uploadRequest("raw.xlsx", bytes.Repeat([]byte("x"), 4096)))

			Convey("Then it is refused", func() {
				So(w.Code, ShouldBeIn, []int{http.StatusRequestEntityTooLarge, http.StatusBadRequest})
				So(deps.scored, ShouldEqual, 0)
			})
		})
	})
}

func TestRunsHandler(t *testing.T) {
	Convey("Given stored runs", t, func() {
		deps := &mockDependencies{runs: []repository.Run{{ID: "b"}, {ID: "a"}}}
		mux := newMux(deps)

		Convey("When listing with a limit", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/runs?limit=1", nil))

			Convey("Then the newest runs are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var runs []repository.Run
				So(json.Unmarshal(w.Body.Bytes(), &runs), ShouldBeNil)
				So(runs, ShouldHaveLength, 1)
				So(runs[0].ID, ShouldEqual, "b")
			})
		})

		Convey("When the limit is invalid or too large", func() {
			So(serve(mux, httptest.NewRequest(http.MethodGet, "/runs?limit=0", nil)).Code, ShouldEqual, http.StatusBadRequest)
			So(serve(mux, httptest.NewRequest(http.MethodGet, "/runs?limit=abc", nil)).Code, ShouldEqual, http.StatusBadRequest)
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/runs?limit=1000", nil))
			So(errorCode(w), ShouldEqual, "limit_exceeded")
		})

		Convey("When nothing is stored", func() {
			w := serve(newMux(&mockDependencies{}), httptest.NewRequest(http.MethodGet, "/runs", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
		})
	})
}

func TestReportsHandler(t *testing.T) {
	Convey("Given the reports endpoint", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("Then malformed paths are bad requests", func() {
			So(serve(mux, httptest.NewRequest(http.MethodGet, "/reports/only-run", nil)).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then unknown files are not found", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/reports/r1/x.xlsx", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then other lookup failures are server errors", func() {
			deps.pathErr = errors.New("boom")
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/reports/r1/x.xlsx", nil))
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestEndToEnd(t *testing.T) {
	Convey("Given the API over a real service", t, func() {
		svc := service.New(
			service.WithLogger(logger.NewNop()),
			service.WithOutputDir(t.TempDir()),
		)
		mux := newMux(svc)

		Convey("When a two-class sheet is uploaded", func() {
			content := workbook(
				[]any{"班级", "学号", "性别", "姓名", "引体向上", "1500米"},
				[]any{"一班", "001", "男", "张三", 10, "5:30"},
				[]any{"班级", "性别", "姓名", "仰卧起坐"},
				[]any{"二班", "女", "王芳", ""},
			)
			w := serve(mux, uploadRequest("raw.xlsx", content))
			So(w.Code, ShouldEqual, http.StatusOK)

			var resp struct {
				RunID      string   `json:"run_id"`
				ClassFiles []string `json:"class_files"`
				Downloads  []string `json:"downloads"`
				Students   int      `json:"students"`
				Columns    []string `json:"columns"`
				Preview    [][]any  `json:"preview"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)

			Convey("Then the response describes the run", func() {
				So(resp.RunID, ShouldNotBeEmpty)
				So(resp.Students, ShouldEqual, 2)
				So(resp.ClassFiles, ShouldHaveLength, 2)
				So(resp.Downloads, ShouldHaveLength, 3)
				So(resp.Preview, ShouldHaveLength, 2)
				So(resp.Preview[0], ShouldHaveLength, len(resp.Columns))
			})

			Convey("Then every download link serves a workbook", func() {
				for _, link := range resp.Downloads {
					u, err := url.Parse(link)
					So(err, ShouldBeNil)
					dl := serve(mux, httptest.NewRequest(http.MethodGet, u.String(), nil))
					So(dl.Code, ShouldEqual, http.StatusOK)
					So(dl.Header().Get("Content-Disposition"), ShouldStartWith, "attachment")

					f, err := excelize.OpenReader(dl.Body)
					So(err, ShouldBeNil)
					_ = f.Close()
				}
			})

			Convey("Then the run is listed", func() {
				lw := serve(mux, httptest.NewRequest(http.MethodGet, "/runs", nil))
				So(lw.Body.String(), ShouldContainSubstring, resp.RunID)
			})
		})

		Convey("When the sheet has no valid segment", func() {
			content := workbook([]any{"班级", "性别", "姓名"}, []any{"一班", "X", "张三"})
			w := serve(mux, uploadRequest("raw.xlsx", content))
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("When the upload is not a workbook", func() {
			w := serve(mux, uploadRequest("raw.xlsx", []byte("plain text")))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w), ShouldEqual, "bad_workbook")
		})
	})
}
