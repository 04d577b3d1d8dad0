package game

// Controller defines the brain of a player
type Controller interface {
	NextDirection(s GameState) Direction
}

// HeuristicController steers toward the food while keeping enough open
// space behind the head to survive
type HeuristicController struct{}

// candidate order when scores tie
var allDirections = [...]Direction{Up, Down, Left, Right}

// NextDirection picks the best heading for the snapshot
func (HeuristicController) NextDirection(s GameState) Direction {
	if len(s.Snake) == 0 {
		return s.Facing
	}
	grid := Grid{Width: s.Width, Height: s.Height}
	head := s.Snake[0]
	snakeLen := len(s.Snake)

	// The engine tests the head against the body before the tail moves, so
	// the tail cell is a collision for the next step. It is free for every
	// step after that, which is what the flood fill measures.
	occupied := make(map[Point]bool, snakeLen)
	for _, p := range s.Snake {
		occupied[p] = true
	}
	behind := make(map[Point]bool, snakeLen)
	for _, p := range s.Snake[:snakeLen-1] {
		behind[p] = true
	}

	best := s.Facing
	bestScore := -1000000.0

	for _, dir := range allDirections {
		// Prevent 180-degree turns
		if dir == s.Facing.Opposite() {
			continue
		}

		next := head.Add(dir.Delta())
		if !grid.Contains(next) || occupied[next] {
			continue
		}

		reachable := countReachableSpace(next, grid, behind, snakeLen+20)
		score := float64(reachable) * 50.0
		if reachable < snakeLen {
			score -= 5000.0
		}

		score += (100.0 - float64(manhattan(next, s.Food))) * 2.0
		if next == s.Food {
			score += 1000.0
		}

		// Low on space: stay close to the tail, it is the cell that frees up next
		threshold := snakeLen + 10
		if reachable < threshold {
			tail := s.Snake[snakeLen-1]
			urgency := float64(threshold - reachable)
			score += (100.0 - float64(manhattan(next, tail))) * urgency * 0.5
		}

		if score > bestScore {
			bestScore = score
			best = dir
		}
	}

	return best
}

// countReachableSpace flood-fills free cells from start, stopping at limit
func countReachableSpace(start Point, grid Grid, occupied map[Point]bool, limit int) int {
	visited := map[Point]bool{start: true}
	queue := []Point{start}
	count := 0

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		count++
		if count >= limit {
			return count
		}

		for _, d := range allDirections {
			next := curr.Add(d.Delta())
			if !grid.Contains(next) || occupied[next] || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return count
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AutoPlay lets c steer g: after every update of a running game the
// controller's choice is queued for the next tick
func AutoPlay(g *Game, c Controller) {
	g.OnUpdate(func(s GameState) {
		if s.State != Running {
			return
		}
		g.RequestDirection(c.NextDirection(s))
	})
}
