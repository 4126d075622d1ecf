package kubectl

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/Sameer-kulkarni-sk/ACS-GCP/internal/transport/dto"
)

// splitRows splits tab-and-newline delimited output into rows of fields,
// skipping blank lines.
func splitRows(out []byte) [][]string {
	var rows [][]string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

func parsePods(out []byte) []dto.PodRecord {
	rows := splitRows(out)
	pods := make([]dto.PodRecord, 0, len(rows))
	for _, fields := range rows {
		pods = append(pods, dto.PodFromFields(fields))
	}
	return pods
}

func parseNodes(out []byte) []dto.NodeRecord {
	rows := splitRows(out)
	nodes := make([]dto.NodeRecord, 0, len(rows))
	for _, fields := range rows {
		nodes = append(nodes, dto.NodeFromFields(fields))
	}
	return nodes
}
