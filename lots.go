package stockbook

// lot is an open tranche of a security, acquired by a single transaction.
type lot struct {
	Date     Date
	Quantity Quantity // remaining quantity
	Original Quantity
	UnitCost Money // fully loaded cost of one share
}

// Cost returns the cost basis of the remaining quantity.
func (l lot) Cost() Money { return l.UnitCost.Mul(l.Quantity) }

// lots is a FIFO queue, oldest lot first.
type lots []lot

// push appends a lot at the tail of the queue.
func (l lots) push(on Date, quantity Quantity, cost Money) lots {
	return append(l, lot{Date: on, Quantity: quantity, Original: quantity, UnitCost: cost.Div(quantity)})
}

// consume removes quantityToSell from the queue, oldest lot first. It returns
// the remaining queue, the cost basis of the consumed shares, and the part of
// quantityToSell that could not be matched because the queue ran out.
func (l lots) consume(quantityToSell Quantity) (remaining lots, cost Money, shortfall Quantity) {
	for len(l) > 0 && quantityToSell.IsPositive() {
		head := l[0]
		if head.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			cost = cost.Add(head.UnitCost.Mul(quantityToSell))
			l[0].Quantity = head.Quantity.Sub(quantityToSell)
			quantityToSell = Q(0)
			break
		}
		// Full sale of this lot
		cost = cost.Add(head.Cost())
		quantityToSell = quantityToSell.Sub(head.Quantity)
		l = l[1:]
	}
	return l, cost, quantityToSell
}

// Quantity returns the total remaining quantity.
func (l lots) Quantity() Quantity {
	var q Quantity
	for _, x := range l {
		q = q.Add(x.Quantity)
	}
	return q
}

// Cost returns the total cost basis of the remaining quantity.
func (l lots) Cost() Money {
	var c Money
	for _, x := range l {
		c = c.Add(x.Cost())
	}
	return c
}
