package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/model"
	"match-service/internal/match/service"
	"match-service/internal/metrics"
	"match-service/internal/middleware"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// memory для ParseMultipartForm, остальное уходит во временные файлы
	formMemory = 32 << 20
)

type tableJSON struct {
	Sheet   string     `json:"sheet"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func toTableJSON(nt model.NamedTable) tableJSON {
	return tableJSON{Sheet: nt.Sheet, Columns: nt.Table.Columns, Rows: nt.Table.Matrix()}
}

type matchResponse struct {
	Matched   tableJSON      `json:"matched"`
	Decided   *tableJSON     `json:"decided,omitempty"`
	Matches   int            `json:"matches"`
	Decisions map[string]int `json:"decisions,omitempty"`
	Opts      model.Request  `json:"opts"`
}

// Match обслуживает POST /match. Ответ: xlsx (по умолчанию) или json при format=json.
// Счётчик совпадений всегда в X-Match-Count.
func Match(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := middleware.Logger(r, logger)

		var (
			req      model.Request
			res      *model.Result
			progress = metrics.NewProgress(func(p model.Progress) {
				log.Trace().Int("row", p.Processed).Int("total", p.Total).Int("matches", p.Matches).Msg("progress")
			})
		)
		fail := func(err error) {
			status := writeError(w, err)
			outcome := metrics.StatusError
			if status < http.StatusInternalServerError {
				outcome = metrics.StatusBadRequest
				log.Warn().Err(err).Int("status", status).Msg("match rejected")
			} else {
				log.Error().Err(err).Msg("match failed")
			}
			metrics.ObserveRun(req.Mode, outcome, progress.Processed(), nil, time.Since(start))
		}

		if err := r.ParseMultipartForm(formMemory); err != nil {
			fail(fmt.Errorf("%w: bad multipart form: %w", errBadForm, err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		req, err := parseRequest(r, cfg)
		if err != nil {
			fail(err)
			return
		}
		up, err := loadUpload(r, atoi(r.FormValue("header_row"), cfg.HeaderRow))
		if err != nil {
			fail(err)
			return
		}
		defer up.Close()

		if up.book != nil {
			req.LeftSheet = strings.TrimSpace(r.FormValue("left_sheet"))
			req.RightSheet = strings.TrimSpace(r.FormValue("right_sheet"))
		} else {
			req.LeftSheet, req.RightSheet = up.names[0], up.names[1]
		}

		opts, err := service.NewOptions(cfg.Scorer, cfg.PairScorer, &log)
		if err != nil {
			fail(err)
			return
		}
		opts.Progress = progress.Func()

		res, err = service.Run(r.Context(), service.Sheets(up.tables), req, opts)
		if err != nil {
			fail(err)
			return
		}
		w.Header().Set("X-Match-Count", strconv.Itoa(res.Matches))

		if strings.EqualFold(r.FormValue("format"), "json") {
			resp := matchResponse{
				Matched:   toTableJSON(res.Matched),
				Matches:   res.Matches,
				Decisions: res.Decisions,
				Opts:      req,
			}
			if res.Decided != nil {
				d := toTableJSON(*res.Decided)
				resp.Decided = &d
			}
			if err := writeJSON(w, http.StatusOK, resp); err != nil {
				log.Error().Err(err).Msg("write json")
			}
		} else if err := writeWorkbook(w, up, req, res); err != nil {
			fail(err)
			return
		}

		metrics.ObserveRun(req.Mode, metrics.StatusOK, progress.Processed(), res, time.Since(start))
		log.Info().
			Str("left", req.LeftSheet).
			Str("right", req.RightSheet).
			Int("matches", res.Matches).
			Dur("elapsed", time.Since(start)).
			Msg("match request done")
	}
}

// writeWorkbook собирает xlsx в память целиком: ошибка записи ещё может стать 500.
func writeWorkbook(w http.ResponseWriter, up *upload, req model.Request, res *model.Result) error {
	book, names, err := up.resultBook(res.Tables())
	if err != nil {
		return err
	}
	if book != up.book {
		defer book.Close()
	}
	buf, err := book.WriteToBuffer()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", up.resultFilename(req)))
	w.Header().Set("X-Result-Sheets", strings.Join(names, ","))
	_, err = buf.WriteTo(w)
	return err
}

type sheetJSON struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
}

// Sheets отдаёт листы и колонки загруженной книги, колонки уже с суффиксом листа.
func Sheets(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := middleware.Logger(r, logger)
		if err := r.ParseMultipartForm(formMemory); err != nil {
			writeError(w, fmt.Errorf("%w: bad multipart form: %w", errBadForm, err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		f, h, err := r.FormFile("file")
		if err != nil {
			writeError(w, fmt.Errorf("%w: missing file: %v", errBadForm, err))
			return
		}
		defer f.Close()
		headerRow := atoi(r.FormValue("header_row"), cfg.HeaderRow)

		var out []sheetJSON
		if strings.EqualFold(filepath.Ext(h.Filename), ".xlsx") {
			up, err := loadWorkbook(f, h, headerRow)
			if err != nil {
				writeError(w, err)
				return
			}
			defer up.Close()
			for _, name := range up.names {
				t := up.tables[name]
				out = append(out, sheetJSON{Name: name, Columns: t.Columns, Rows: t.Len()})
			}
		} else {
			s, err := fileio.ReadAnyMaps(f, h.Filename, headerRow)
			if err != nil {
				writeError(w, fmt.Errorf("%w: %s: %v", errBadForm, h.Filename, err))
				return
			}
			t := s.Table()
			out = append(out, sheetJSON{Name: t.Name, Columns: t.Columns, Rows: t.Len()})
		}

		log.Debug().Str("file", h.Filename).Int("sheets", len(out)).Msg("sheets listed")
		if err := writeJSON(w, http.StatusOK, map[string]any{"sheets": out}); err != nil {
			log.Error().Err(err).Msg("write json")
		}
	}
}
