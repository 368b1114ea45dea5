// Package fixtures holds maze texts shared by tests, examples and benchmarks.
package fixtures

// Corridors is the 15×15 maze of two long corridors joined by turns.
// Minimum cost 7036; 45 cells lie on optimal paths.
const Corridors = `###############
#.......#....E#
#.#.###.#.###.#
#.....#.#...#.#
#.###.#####.#.#
#.#.#.......#.#
#.#.#####.###.#
#...........#.#
###.#.#####.#.#
#...#.....#.#.#
#.#.#.###.#.#.#
#.....#...#.#.#
#.###.#.#.#.#.#
#S..#.....#...#
###############
`

// Junction is the 17×17 maze whose equal-cost routes meet at a central junction.
// Minimum cost 11048; 64 cells lie on optimal paths.
const Junction = `#################
#...#...#...#..E#
#.#.#.#.#.#.#.#.#
#.#.#.#...#...#.#
#.#.#.#.###.#.#.#
#...#.#.#.....#.#
#.#.#.#.#.#####.#
#.#...#.#.#.....#
#.#.#####.#.###.#
#.#.#.......#...#
#.#.###.#####.###
#.#.#...#.....#.#
#.#.#.#####.###.#
#.#.#.........#.#
#.#.#.#########.#
#S#.............#
#################
`

// Walled separates S from E by an unbroken wall.
const Walled = `#######
#S.#..#
#..#.E#
#######
`

// Straight is a single eastward corridor: five steps, no turns. Cost 5.
const Straight = `########
#S....E#
########
`

// Elbow needs one turn: four steps east, a turn north, two steps north. Cost 1006.
const Elbow = `#######
#....E#
#.....#
#S....#
#######
`

// Backwards puts E two cells west of S: two turns then two steps. Cost 2002.
const Backwards = `######
#E.S.#
######
`

// Adjacent is the smallest maze: S and E side by side. Cost 1.
const Adjacent = `SE
`

// Pillar offers east-then-north (cost 1004) and north-then-east (cost 2004)
// around a central pillar; only the first is optimal.
const Pillar = `#####
#..E#
#.#.#
#S..#
#####
`
