package factdomain

import (
	matchdomain "github.com/copperhead-cup/cup-bot/app/modules/match/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// jekyllAndHydeGap is the worst-minus-best ball spread that brands a pairing
// wildly inconsistent.
const jekyllAndHydeGap = 24

// BuildFacts derives one fact record per participating player from a closed
// match. A match that is not closed yields no facts; callers delete any
// previously emitted set in that case.
//
// Two passes over the holes, deliberately different in reach:
//   - badge accounting (lead changes, never-behind, ball/drive usage,
//     ham & egg) stops at the winning hole — post-match holes cannot rewrite
//     how the match was won;
//   - scoring totals, best/worst-ball totals and the per-hole ledger cover
//     every entered hole, because "for the record" golf still counts toward
//     cumulative scoring stats.
func BuildFacts(match *matchdomain.Match, ctx FactContext) []PlayerMatchFact {
	summary := match.Summarize()
	if !summary.Status.Closed {
		return nil
	}
	ctx = ctx.normalized()

	format := match.Format
	teamA := matchdomain.NormalizeSide(match.TeamA, format)
	teamB := matchdomain.NormalizeSide(match.TeamB, format)
	results := summary.HoleResults

	bound := sharedtypes.HolesPerRound
	if summary.WinningHole != nil {
		bound = *summary.WinningHole
	}

	acc := newMatchAccum(format, ctx.HolePars)
	for i := 0; i < bound; i++ {
		acc.boundedHole(match.Holes[i], i, results[i], teamA, teamB)
	}

	marginInto18 := matchdomain.MarginAfterHole(results, sharedtypes.HolesPerRound-1)
	hole18 := results[sharedtypes.HolesPerRound-1]
	decidedOn18 := decidedOnEighteen(marginInto18, hole18)

	b := &factBuild{
		match:       match,
		ctx:         ctx,
		summary:     summary,
		acc:         acc,
		decidedOn18: decidedOn18,
		hole18:      hole18,
	}

	facts := make([]PlayerMatchFact, 0, len(teamA)+len(teamB))
	for seat, player := range teamA {
		if player.PlayerID == "" {
			continue
		}
		facts = append(facts, b.playerFact(sharedtypes.TeamA, seat, teamA, teamB))
	}
	for seat, player := range teamB {
		if player.PlayerID == "" {
			continue
		}
		facts = append(facts, b.playerFact(sharedtypes.TeamB, seat, teamB, teamA))
	}
	return facts
}

type factBuild struct {
	match       *matchdomain.Match
	ctx         FactContext
	summary     matchdomain.Summary
	acc         *matchAccum
	decidedOn18 bool
	hole18      *sharedtypes.HoleResult
}

func (b *factBuild) playerFact(
	team sharedtypes.TeamSide,
	seat int,
	ownSide, otherSide []matchdomain.PlayerSide,
) PlayerMatchFact {
	match, ctx, summary := b.match, b.ctx, b.summary
	player := ownSide[seat]
	side := b.acc.sides[team]

	fact := PlayerMatchFact{
		MatchID:      match.ID,
		RoundID:      ctx.RoundID,
		TournamentID: ctx.TournamentID,
		PlayerID:     player.PlayerID,
		Team:         team,
		Format:       match.Format,

		Margin:    summary.Status.Margin,
		Scoreline: summary.Result.Scoreline,

		PlayerTier:          ctx.tier(player.PlayerID),
		PlayerHandicapIndex: ctx.handicapIndex(player.PlayerID),

		HolesWonByTeam:  side.wonHoles,
		HolesLostByTeam: side.lostHoles,
		HolesHalved:     side.halvedHoles,
		WinningHole:     summary.WinningHole,

		WasNeverBehind: !side.everBehind,
		LeadChanges:    b.acc.leadChanges,

		BallsUsed:       side.seats[seat].ballsUsed,
		BallsUsedSolo:   side.seats[seat].ballsUsedSolo,
		BallsUsedShared: side.seats[seat].ballsUsedShared,
		SoloBallWonHole: side.seats[seat].soloWonHole,
		SoloBallPush:    side.seats[seat].soloPush,
		DrivesUsed:      side.seats[seat].drivesUsed,
		HamAndEggCount:  side.hamAndEgg,

		DecidedOn18: b.decidedOn18,
	}

	// Outcome and points.
	winner := summary.Result.Winner
	switch {
	case winner == sharedtypes.WinnerAllSquare:
		fact.Outcome = sharedtypes.OutcomeHalved
		fact.Points = ctx.PointsValue / 2
	case (winner == sharedtypes.WinnerTeamA) == (team == sharedtypes.TeamA):
		fact.Outcome = sharedtypes.OutcomeWin
		fact.Points = ctx.PointsValue
	default:
		fact.Outcome = sharedtypes.OutcomeLoss
	}

	// Momentum badges ride on the summarizer's back-9 flags, read from the
	// player's team's perspective.
	teamDown3 := summary.Status.TeamADown3PlusBack9
	teamUp3 := summary.Status.TeamAUp3PlusBack9
	if team == sharedtypes.TeamB {
		teamDown3, teamUp3 = teamUp3, teamDown3
	}
	fact.ComebackWin = fact.Outcome == sharedtypes.OutcomeWin && teamDown3
	fact.BlownLead = fact.Outcome == sharedtypes.OutcomeLoss && teamUp3

	if b.hole18 != nil {
		fact.Won18thHole = (*b.hole18 == sharedtypes.HoleWonByTeamA) == (team == sharedtypes.TeamA) &&
			*b.hole18 != sharedtypes.HoleHalved
	}

	// Partner and opponent snapshots.
	if match.Format.PlayersPerSide() == 2 {
		partner := ownSide[1-seat]
		if partner.PlayerID != "" {
			id := partner.PlayerID
			fact.PartnerID = &id
			fact.PartnerTier = ctx.tier(id)
			fact.PartnerHandicap = ctx.handicapIndex(id)
		}
	}
	for _, opp := range otherSide {
		if opp.PlayerID == "" {
			continue
		}
		fact.OpponentIDs = append(fact.OpponentIDs, opp.PlayerID)
		fact.OpponentTiers = append(fact.OpponentTiers, ctx.tier(opp.PlayerID))
		fact.OpponentHandicaps = append(fact.OpponentHandicaps, ctx.handicapIndex(opp.PlayerID))
	}

	// Captain badges. Captain-vs-captain belongs to the captains alone.
	fact.IsCaptain = ctx.CaptainByTeam[team] == player.PlayerID
	fact.IsCoCaptain = ctx.CoCaptainByTeam[team] == player.PlayerID
	if fact.IsCaptain {
		ownCaptain := ctx.CaptainByTeam[team]
		oppCaptain := ctx.CaptainByTeam[team.Opponent()]
		fact.CaptainVsCaptain = sideHasPlayer(ownSide, ownCaptain) && sideHasPlayer(otherSide, oppCaptain)
	}

	b.scoringPass(&fact, team, seat, ownSide)
	return fact
}

// scoringPass walks every entered hole — the unbounded second pass — filling
// the ledger, cumulative scoring totals, and the team's best/worst-ball
// totals.
func (b *factBuild) scoringPass(
	fact *PlayerMatchFact,
	team sharedtypes.TeamSide,
	seat int,
	ownSide []matchdomain.PlayerSide,
) {
	match, ctx := b.match, b.ctx
	format := match.Format
	results := b.summary.HoleResults

	var (
		grossSum, strokeSum, parSum  int
		grossHoles                   int
		teamGrossSum, teamHoles      int
		bestSum, worstSum, pairHoles int
	)

	for i := 0; i < sharedtypes.HolesPerRound; i++ {
		input := match.Holes[i]
		if input == nil {
			continue
		}
		holeNumber := i + 1
		perf := &HolePerformance{
			Hole:   holeNumber,
			Par:    ctx.HolePars[i],
			Result: results[i],
		}

		switch in := input.(type) {
		case matchdomain.SinglesHole:
			gross := in.AGross
			if team == sharedtypes.TeamB {
				gross = in.BGross
			}
			if gross != nil {
				g := *gross
				strokes := ownSide[seat].StrokesReceived[i]
				net := g - strokes
				perf.Gross = &g
				perf.Strokes = strokes
				perf.Net = &net

				grossSum += g
				strokeSum += strokes
				parSum += ctx.HolePars[i]
				grossHoles++
			}

		case matchdomain.ScrambleHole:
			gross := in.AGross
			drive := in.ADrive
			if team == sharedtypes.TeamB {
				gross = in.BGross
				drive = in.BDrive
			}
			if gross != nil {
				g := *gross
				perf.Gross = &g
				teamGrossSum += g
				teamHoles++
			}
			perf.DriveUsed = drive != nil && *drive == seat

		case matchdomain.PairHole:
			gross := in.AGross
			drive := in.ADrive
			if team == sharedtypes.TeamB {
				gross = in.BGross
				drive = in.BDrive
			}
			own := gross[seat]
			partner := gross[1-seat]
			if own != nil {
				g := *own
				strokes := ownSide[seat].StrokesReceived[i]
				net := g - strokes
				perf.Gross = &g
				perf.Strokes = strokes
				perf.Net = &net

				grossSum += g
				strokeSum += strokes
				parSum += ctx.HolePars[i]
				grossHoles++
			}
			if partner != nil {
				p := *partner
				perf.PartnerGross = &p
			}
			if own != nil && partner != nil {
				effOwn := effectiveScore(format, *own, ownSide, seat, holeNumber)
				effPartner := effectiveScore(format, *partner, ownSide, 1-seat, holeNumber)
				beat := effOwn < effPartner
				perf.BeatPartner = &beat
				perf.BallUsed = effOwn <= effPartner
				perf.BallShared = effOwn == effPartner

				low, high := effOwn, effPartner
				if high < low {
					low, high = high, low
				}
				bestSum += low
				worstSum += high
				pairHoles++
			}
			if format == sharedtypes.FormatTwoManShamble {
				perf.DriveUsed = drive != nil && *drive == seat
			}
		}

		fact.HolePerformance[i] = perf
	}

	switch format {
	case sharedtypes.FormatTwoManScramble:
		if teamHoles > 0 {
			fact.TeamTotalGross = intPtr(teamGrossSum)
		}
	default:
		if grossHoles > 0 {
			netSum := grossSum - strokeSum
			fact.TotalGross = intPtr(grossSum)
			fact.TotalNet = intPtr(netSum)
			fact.StrokesVsParGross = intPtr(grossSum - parSum)
			fact.StrokesVsParNet = intPtr(netSum - parSum)
		}
	}

	if format == sharedtypes.FormatTwoManBestBall || format == sharedtypes.FormatTwoManShamble {
		if pairHoles > 0 {
			fact.BestBallTotal = intPtr(bestSum)
			fact.WorstBallTotal = intPtr(worstSum)
			fact.JekyllAndHyde = worstSum-bestSum >= jekyllAndHydeGap
		}
	}
}

func sideHasPlayer(side []matchdomain.PlayerSide, id sharedtypes.PlayerID) bool {
	if id == "" {
		return false
	}
	for _, p := range side {
		if p.PlayerID == id {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }

// seatAccum is one player-seat's bounded-pass tallies.
type seatAccum struct {
	ballsUsed       int
	ballsUsedSolo   int
	ballsUsedShared int
	soloWonHole     int
	soloPush        int
	drivesUsed      int
}

// sideAccum is one team's bounded-pass tallies.
type sideAccum struct {
	seats       [2]seatAccum
	hamAndEgg   int
	wonHoles    int
	lostHoles   int
	halvedHoles int
	everBehind  bool
}

// matchAccum carries everything the bounded pass produces.
type matchAccum struct {
	format      sharedtypes.Format
	holePars    [sharedtypes.HolesPerRound]int
	sides       map[sharedtypes.TeamSide]*sideAccum
	leadChanges int
	lastLeader  *sharedtypes.TeamSide
	marginA     int
}

func newMatchAccum(format sharedtypes.Format, holePars [sharedtypes.HolesPerRound]int) *matchAccum {
	return &matchAccum{
		format:   format,
		holePars: holePars,
		sides: map[sharedtypes.TeamSide]*sideAccum{
			sharedtypes.TeamA: {},
			sharedtypes.TeamB: {},
		},
	}
}

func (m *matchAccum) boundedHole(
	input matchdomain.HoleInput,
	index int,
	result *sharedtypes.HoleResult,
	teamA, teamB []matchdomain.PlayerSide,
) {
	holeNumber := index + 1

	if result != nil {
		a := m.sides[sharedtypes.TeamA]
		b := m.sides[sharedtypes.TeamB]
		switch *result {
		case sharedtypes.HoleWonByTeamA:
			m.marginA++
			a.wonHoles++
			b.lostHoles++
		case sharedtypes.HoleWonByTeamB:
			m.marginA--
			b.wonHoles++
			a.lostHoles++
		case sharedtypes.HoleHalved:
			a.halvedHoles++
			b.halvedHoles++
		}

		if m.marginA < 0 {
			a.everBehind = true
		}
		if m.marginA > 0 {
			b.everBehind = true
		}

		var leader *sharedtypes.TeamSide
		switch {
		case m.marginA > 0:
			side := sharedtypes.TeamA
			leader = &side
		case m.marginA < 0:
			side := sharedtypes.TeamB
			leader = &side
		}
		// Taking the first lead is not a change; only A<->B switches count.
		if leader != nil {
			if m.lastLeader != nil && *m.lastLeader != *leader {
				m.leadChanges++
			}
			m.lastLeader = leader
		}
	}

	if pair, ok := input.(matchdomain.PairHole); ok && m.format != sharedtypes.FormatTwoManScramble {
		m.pairUsage(sharedtypes.TeamA, pair.AGross, teamA, holeNumber, result, sharedtypes.HoleWonByTeamA)
		m.pairUsage(sharedtypes.TeamB, pair.BGross, teamB, holeNumber, result, sharedtypes.HoleWonByTeamB)
		if m.format == sharedtypes.FormatTwoManShamble {
			m.driveUsage(sharedtypes.TeamA, pair.ADrive)
			m.driveUsage(sharedtypes.TeamB, pair.BDrive)
		}
	}
	if scramble, ok := input.(matchdomain.ScrambleHole); ok {
		m.driveUsage(sharedtypes.TeamA, scramble.ADrive)
		m.driveUsage(sharedtypes.TeamB, scramble.BDrive)
	}
}

// pairUsage tallies counting-ball usage and ham & egg for one side on one
// hole. Best ball compares nets, shamble compares gross.
func (m *matchAccum) pairUsage(
	team sharedtypes.TeamSide,
	gross [2]*int,
	side []matchdomain.PlayerSide,
	holeNumber int,
	result *sharedtypes.HoleResult,
	winResult sharedtypes.HoleResult,
) {
	if gross[0] == nil || gross[1] == nil {
		return
	}
	acc := m.sides[team]

	eff0 := effectiveScore(m.format, *gross[0], side, 0, holeNumber)
	eff1 := effectiveScore(m.format, *gross[1], side, 1, holeNumber)

	switch {
	case eff0 < eff1:
		m.soloBall(acc, 0, result, winResult)
	case eff1 < eff0:
		m.soloBall(acc, 1, result, winResult)
	default:
		acc.seats[0].ballsUsed++
		acc.seats[1].ballsUsed++
		acc.seats[0].ballsUsedShared++
		acc.seats[1].ballsUsedShared++
	}

	// Ham & egg: one ball at par or better while the partner's is double
	// bogey or worse, both measured on the format's comparison scale.
	par := m.holePars[holeNumber-1]
	if par <= 0 {
		par = 4
	}
	low, high := eff0, eff1
	if high < low {
		low, high = high, low
	}
	if low <= par && high >= par+2 {
		acc.hamAndEgg++
	}
}

func (m *matchAccum) soloBall(acc *sideAccum, seat int, result *sharedtypes.HoleResult, winResult sharedtypes.HoleResult) {
	acc.seats[seat].ballsUsed++
	acc.seats[seat].ballsUsedSolo++
	if result == nil {
		return
	}
	switch *result {
	case winResult:
		acc.seats[seat].soloWonHole++
	case sharedtypes.HoleHalved:
		acc.seats[seat].soloPush++
	}
}

func (m *matchAccum) driveUsage(team sharedtypes.TeamSide, drive *int) {
	if drive == nil {
		return
	}
	seat := *drive
	if seat < 0 || seat > 1 {
		return
	}
	m.sides[team].seats[seat].drivesUsed++
}

// effectiveScore is the per-ball comparison value: net in best ball, raw
// gross everywhere else.
func effectiveScore(format sharedtypes.Format, gross int, side []matchdomain.PlayerSide, seat, holeNumber int) int {
	if format != sharedtypes.FormatTwoManBestBall {
		return gross
	}
	if seat < 0 || seat >= len(side) {
		return gross
	}
	return gross - side[seat].StrokesReceived[holeNumber-1]
}

// decidedOnEighteen applies the 18th-hole decision table. Margins of two or
// more entering the last can only change the scoreline cosmetically.
func decidedOnEighteen(marginInto18 int, hole18 *sharedtypes.HoleResult) bool {
	if hole18 == nil || *hole18 == sharedtypes.HoleHalved {
		return false
	}
	switch {
	case marginInto18 == 0:
		return true
	case marginInto18 == 1:
		// teamA leads by one entering the last; only a teamB steal
		// changes the outcome.
		return *hole18 == sharedtypes.HoleWonByTeamB
	case marginInto18 == -1:
		return *hole18 == sharedtypes.HoleWonByTeamA
	default:
		return false
	}
}
