package registry

import (
	"errors"
	"fmt"

	"firmgen-server/internal/firmware/domain"
)

var (
	ErrMissingCodeStrategy = errors.New("missing code strategy")
	ErrDuplicateDefinition = errors.New("duplicate definition")
)

// StrategyTable is the set of code strategies every catalog entry must map to.
type StrategyTable interface {
	HasSensorStrategy(id domain.StrategyID) bool
	HasBoardStrategy(id domain.StrategyID) bool
}

type Definitions struct {
	Sensors []domain.SensorDescriptor
	Boards  []domain.BoardProfile
}

// New builds the registry and checks that every entry has a code strategy.
// The registry is read-only afterwards and safe for concurrent use: entries
// are copied in and every read hands out a fresh copy.
func New(definitions Definitions, strategies StrategyTable) (*Registry, error) {
	r := &Registry{
		sensors:     cloneSensors(definitions.Sensors),
		boards:      cloneBoards(definitions.Boards),
		sensorIndex: make(map[string]int, len(definitions.Sensors)),
		boardIndex:  make(map[string]int, len(definitions.Boards)),
	}

	for i, sensor := range r.sensors {
		if _, exists := r.sensorIndex[sensor.Type]; exists {
			return nil, fmt.Errorf("%w: sensor %s", ErrDuplicateDefinition, sensor.Type)
		}
		if !strategies.HasSensorStrategy(sensor.StrategyID) {
			return nil, fmt.Errorf("%w: sensor %s uses %q", ErrMissingCodeStrategy, sensor.Type, sensor.StrategyID)
		}
		r.sensorIndex[sensor.Type] = i
	}

	for i, board := range r.boards {
		if _, exists := r.boardIndex[board.ID]; exists {
			return nil, fmt.Errorf("%w: board %s", ErrDuplicateDefinition, board.ID)
		}
		if !strategies.HasBoardStrategy(board.StrategyID) {
			return nil, fmt.Errorf("%w: board %s uses %q", ErrMissingCodeStrategy, board.ID, board.StrategyID)
		}
		r.boardIndex[board.ID] = i
	}

	return r, nil
}

func MustNew(definitions Definitions, strategies StrategyTable) *Registry {
	r, err := New(definitions, strategies)
	if err != nil {
		panic(fmt.Sprintf("building capability registry: %s", err))
	}
	return r
}

type Registry struct {
	sensors     []domain.SensorDescriptor
	boards      []domain.BoardProfile
	sensorIndex map[string]int
	boardIndex  map[string]int
}

func (r *Registry) ListSensors() []domain.SensorDescriptor {
	return cloneSensors(r.sensors)
}

func (r *Registry) ListBoards() []domain.BoardProfile {
	return cloneBoards(r.boards)
}

func (r *Registry) FindSensor(sensorType string) (domain.SensorDescriptor, bool) {
	i, ok := r.sensorIndex[sensorType]
	if !ok {
		return domain.SensorDescriptor{}, false
	}
	return r.sensors[i].Clone(), true
}

func (r *Registry) FindBoard(id string) (domain.BoardProfile, bool) {
	i, ok := r.boardIndex[id]
	if !ok {
		return domain.BoardProfile{}, false
	}
	return r.boards[i].Clone(), true
}

func cloneSensors(sensors []domain.SensorDescriptor) []domain.SensorDescriptor {
	out := make([]domain.SensorDescriptor, len(sensors))
	for i, sensor := range sensors {
		out[i] = sensor.Clone()
	}
	return out
}

func cloneBoards(boards []domain.BoardProfile) []domain.BoardProfile {
	out := make([]domain.BoardProfile, len(boards))
	for i, board := range boards {
		out[i] = board.Clone()
	}
	return out
}
