package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

const DefaultNetworkDepth = 2

// NetworkNode is one person discovered by the walk, annotated with the
// depth at which it was first reached and the edge that reached it.
type NetworkNode struct {
	PersonID    uint   `json:"pessoa_id"`
	Depth       int    `json:"profundidade"`
	Label       string `json:"tipo_relacionamento"`
	Reliability int16  `json:"confianca"`
}

type NetworkResult struct {
	PersonID         uint          `json:"pessoa_id"`
	Depth            int           `json:"profundidade"`
	TotalConnections int           `json:"total_conexoes"`
	TotalVisited     int           `json:"total_visitados"`
	Network          []NetworkNode `json:"rede"`
}

type NetworkService interface {
	// Expand walks the relationship graph breadth-first from startID up
	// to maxDepth hops and returns the people reached, in discovery
	// order. Edges are undirected for traversal purposes.
	Expand(ctx context.Context, startID uint, maxDepth int) (*NetworkResult, error)
}

type networkService struct {
	db         *gorm.DB
	log        *logger.Logger
	personRepo repos.PersonRepo
	relRepo    repos.RelationshipRepo
}

func NewNetworkService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, relRepo repos.RelationshipRepo) NetworkService {
	serviceLog := log.With("service", "NetworkService")
	return &networkService{db: db, log: serviceLog, personRepo: personRepo, relRepo: relRepo}
}

func (ns *networkService) Expand(ctx context.Context, startID uint, maxDepth int) (*NetworkResult, error) {
	if startID == 0 {
		return nil, apperr.Validation("pessoa_id", "pessoa_id é obrigatório")
	}
	if maxDepth < 0 {
		return nil, apperr.Validation("profundidade", "Profundidade não pode ser negativa")
	}

	start, err := ns.personRepo.GetPerson(ctx, nil, startID)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, apperr.NotFound("Pessoa não encontrada")
	}

	type queueItem struct {
		id    uint
		depth int
	}

	visited := map[uint]bool{startID: true}
	queue := []queueItem{{id: startID, depth: 0}}
	network := []NetworkNode{}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}

		edges, err := ns.relRepo.ListByPerson(ctx, nil, current.id)
		if err != nil {
			return nil, err
		}
		for _, edge := range edges {
			next := edge.TargetID
			if edge.TargetID == current.id {
				next = edge.OriginID
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, queueItem{id: next, depth: current.depth + 1})
			network = append(network, NetworkNode{
				PersonID:    next,
				Depth:       current.depth + 1,
				Label:       edge.Label,
				Reliability: edge.Reliability,
			})
		}
	}

	ns.log.Debug("network expanded", "pessoa_id", startID, "depth", maxDepth,
		"total_conexoes", len(network), "total_visitados", len(visited))

	return &NetworkResult{
		PersonID:         startID,
		Depth:            maxDepth,
		TotalConnections: len(network),
		TotalVisited:     len(visited),
		Network:          network,
	}, nil
}
