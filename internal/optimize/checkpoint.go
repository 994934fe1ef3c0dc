package optimize

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wallacewatler/battlesim/internal/catalog"
)

// solverCheckpoint is the on-disk shape of solver_state.json: the full
// state needed to resume DoIter from exactly where it left off.
type solverCheckpoint struct {
	FitnessFuncEvals int        `json:"fitnessFuncEvals"`
	MaximizerMeta    []Solution `json:"maximizerMeta"`
	MinimizerMeta    []Solution `json:"minimizerMeta"`
}

// SaveCheckpoint writes the solver's full state to path, overwriting
// any existing file.
func (s *Solver) SaveCheckpoint(path string) error {
	ckpt := solverCheckpoint{
		FitnessFuncEvals: s.FitnessFuncEvals,
		MaximizerMeta:    s.MaximizerMeta,
		MinimizerMeta:    s.MinimizerMeta,
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create checkpoint file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ckpt); err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a previously saved solver_state.json back into a
// Solver bound to cat and log. A missing file is returned as the
// os.Open error, which satisfies errors.Is(err, os.ErrNotExist); the
// caller takes that as its signal to initialize a fresh population
// instead (spec's resume contract).
func LoadCheckpoint(path string, cat *catalog.Catalog, log zerolog.Logger) (*Solver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ckpt solverCheckpoint
	dec := json.NewDecoder(f)
	if err := dec.Decode(&ckpt); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}

	return &Solver{
		Catalog:          cat,
		Log:              log,
		FitnessFuncEvals: ckpt.FitnessFuncEvals,
		MaximizerMeta:    ckpt.MaximizerMeta,
		MinimizerMeta:    ckpt.MinimizerMeta,
	}, nil
}

// WriteMaximizerRankingCSV exports the maximizer population, in its
// current order (descending fitness after a DoIter pass; this function
// does not sort), to maximizer_meta.csv: one summary statistic block
// followed by six per-slot team build blocks.
func (s *Solver) WriteMaximizerRankingCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ranking csv: %w", err)
	}
	defer f.Close()
	return writeRankingCSV(f, s.MaximizerMeta)
}

func writeRankingCSV(w io.Writer, meta []Solution) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader()); err != nil {
		return err
	}
	for i := range meta {
		if err := cw.Write(csvRow(&meta[i])); err != nil {
			return err
		}
	}
	return cw.Error()
}

func csvHeader() []string {
	header := []string{"fitness", "fitVariance", "numSamples", "probWorseThanBest"}
	for slot := 0; slot < 6; slot++ {
		prefix := fmt.Sprintf("slot%d_", slot)
		header = append(header, prefix+"species", prefix+"gender", prefix+"nature", prefix+"ability")
		for i := 1; i <= 6; i++ {
			header = append(header, fmt.Sprintf("%siv%d", prefix, i))
		}
		for i := 1; i <= 6; i++ {
			header = append(header, fmt.Sprintf("%sev%d", prefix, i))
		}
		for i := 1; i <= 4; i++ {
			header = append(header, fmt.Sprintf("%smove%d", prefix, i))
		}
	}
	return header
}

func csvRow(sol *Solution) []string {
	row := []string{
		strconv.FormatFloat(sol.Fitness, 'f', -1, 64),
		strconv.FormatFloat(sol.FitVariance, 'f', -1, 64),
		strconv.Itoa(sol.NumSamples),
		strconv.FormatFloat(sol.ProbWorseThanBest, 'f', -1, 64),
	}
	for _, pb := range sol.TeamBuild.Members {
		row = append(row,
			strconv.Itoa(int(pb.Species)),
			strconv.Itoa(int(pb.Gender)),
			strconv.Itoa(int(pb.Nature)),
			strconv.Itoa(int(pb.Ability)),
		)
		for _, iv := range pb.IVs {
			row = append(row, strconv.Itoa(int(iv)))
		}
		for _, ev := range pb.EVs {
			row = append(row, strconv.Itoa(int(ev)))
		}
		moves := make([]string, 4)
		for i, m := range pb.Moves {
			if i >= 4 {
				break
			}
			moves[i] = strconv.Itoa(int(m))
		}
		row = append(row, moves...)
	}
	return row
}
