package raman

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ReadSpectrum parses two column text: wavenumber and intensity per line,
// separated by whitespace or commas. Blank lines and lines starting with
// '#' are skipped, and a non numeric first line is taken as a header.
func ReadSpectrum(r io.Reader) (wavenumbers, intensities []float64, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	first := true
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || unicode.IsSpace(r)
		})
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("%w: line %d: %q", ErrMalformedSpectrum, lineNo, line)
		}
		w, errW := strconv.ParseFloat(fields[0], 64)
		v, errV := strconv.ParseFloat(fields[1], 64)
		if errW != nil || errV != nil {
			if first {
				first = false // header
				continue
			}
			return nil, nil, fmt.Errorf("%w: line %d: %q", ErrMalformedSpectrum, lineNo, line)
		}
		first = false
		wavenumbers = append(wavenumbers, w)
		intensities = append(intensities, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if len(wavenumbers) == 0 {
		return nil, nil, ErrEmptyRange
	}
	return wavenumbers, intensities, nil
}

// ReadSpectrumFile reads a spectrum from path
func ReadSpectrumFile(path string) (wavenumbers, intensities []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadSpectrum(f)
}
