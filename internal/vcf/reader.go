// Package vcf parses text VCF files into genotype code rows for clustering.
//
// Only the columns the pipeline needs are touched: the #CHROM header line
// for sample names, the ALT field to keep biallelic records, and the GT
// subfield of each sample column. Everything else passes through unread.
package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cliftlab/snvclust"
)

// VCF fixed-column layout: CHROM POS ID REF ALT QUAL FILTER INFO FORMAT.
const (
	altColumn    = 4
	formatColumn = 8
	fixedColumns = 9
)

// Genotypes is the parsed genotype table of one VCF input: a code row per
// kept record, each aligned to Samples.
type Genotypes struct {
	Samples []string
	Codes   [][]int8

	// Kept counts records turned into code rows; Skipped counts records
	// dropped because their ALT field does not hold exactly one allele.
	Kept    int
	Skipped int
}

// ReadFile parses a VCF file, plain or gzip-compressed; "-" reads stdin.
func ReadFile(path string) (*Genotypes, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc)
}

// Read parses VCF text from r.
//
// Meta lines (##) are ignored. The #CHROM line must appear before the first
// record and must name at least one sample. Records are kept only when ALT
// holds exactly one non-missing allele; kept records yield one genotype code
// per sample via the GT subfield named by FORMAT. Structural problems in a
// record (too few columns, FORMAT without GT) are errors naming the line;
// unparseable calls within a well-formed record degrade to missing instead.
func Read(r io.Reader) (*Genotypes, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	g := &Genotypes{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		switch {
		case line == "" || strings.HasPrefix(line, "##"):
			continue
		case strings.HasPrefix(line, "#"):
			fields := strings.Split(line, "\t")
			if len(fields) < fixedColumns+1 {
				return nil, fmt.Errorf("vcf: line %d: header line names no samples", lineNum)
			}
			g.Samples = fields[fixedColumns:]
			continue
		}
		if g.Samples == nil {
			return nil, fmt.Errorf("vcf: line %d: record before #CHROM header", lineNum)
		}
		row, keep, err := parseRecord(line, lineNum, len(g.Samples))
		if err != nil {
			return nil, err
		}
		if !keep {
			g.Skipped++
			continue
		}
		g.Codes = append(g.Codes, row)
		g.Kept++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if g.Samples == nil {
		return nil, fmt.Errorf("vcf: no #CHROM header line")
	}
	return g, nil
}

func parseRecord(line string, lineNum, samples int) ([]int8, bool, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < fixedColumns+1 {
		return nil, false, fmt.Errorf("vcf: line %d: %d fields, want at least %d", lineNum, len(fields), fixedColumns+1)
	}
	if len(fields) != fixedColumns+samples {
		return nil, false, fmt.Errorf("vcf: line %d: %d genotype columns, want %d", lineNum, len(fields)-fixedColumns, samples)
	}

	alt := fields[altColumn]
	if alt == "" || alt == "." || strings.Contains(alt, ",") {
		return nil, false, nil
	}

	gtIndex := -1
	for i, key := range strings.Split(fields[formatColumn], ":") {
		if key == "GT" {
			gtIndex = i
			break
		}
	}
	if gtIndex < 0 {
		return nil, false, fmt.Errorf("vcf: line %d: FORMAT has no GT field", lineNum)
	}

	row := make([]int8, samples)
	for s := 0; s < samples; s++ {
		row[s] = snvclust.GenotypeCode(parseCall(fields[fixedColumns+s], gtIndex))
	}
	return row, true, nil
}

// parseCall extracts the GT subfield of one sample column. Haploid calls are
// padded with a reference second allele; any other shape that is not a
// diploid pair becomes the missing call.
func parseCall(column string, gtIndex int) snvclust.Call {
	sub := strings.Split(column, ":")
	if gtIndex >= len(sub) {
		return snvclust.MissingCall
	}
	alleles := strings.FieldsFunc(sub[gtIndex], func(r rune) bool {
		return r == '/' || r == '|'
	})
	switch len(alleles) {
	case 1:
		return snvclust.Call{A: parseAllele(alleles[0]), B: 0}
	case 2:
		return snvclust.Call{A: parseAllele(alleles[0]), B: parseAllele(alleles[1])}
	default:
		return snvclust.MissingCall
	}
}

func parseAllele(tok string) snvclust.Allele {
	if tok == "." {
		return snvclust.AlleleMissing
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 || v > 127 {
		return snvclust.AlleleMissing
	}
	return snvclust.Allele(v)
}

// multiReadCloser closes every wrapped closer, returning the first error.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader opens path for reading, transparently decompressing gzip input.
// Compression is detected by the 1F 8B magic bytes or a .gz suffix, and "-"
// reads stdin.
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
